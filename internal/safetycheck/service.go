package safetycheck

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"homesafe/safety-portal-backend/internal/config"
	"homesafe/safety-portal-backend/internal/imaging"
)

var (
	// ErrInsufficientInput means the request carried neither a name nor a
	// photo; nothing can be checked.
	ErrInsufficientInput = errors.New("please enter the date's name or add a photo to run a safety check")

	// ErrNoNamesExtracted means the photo search succeeded but no candidate
	// names could be pulled from the visual matches and no name was given.
	ErrNoNamesExtracted = errors.New("couldn't identify any names from the photo - try entering the date's name")
)

// Service orchestrates the background-check pipeline: photo hosting,
// reverse-image search, name extraction, per-name news searches, relevance
// filtering, presence lookup and confidence scoring.
type Service struct {
	gateway Gateway
	hoster  imaging.Hoster
	repo    Repository
	cfg     config.SearchConfig
	logger  *zap.Logger
}

// NewService creates the safety-check service
func NewService(gateway Gateway, hoster imaging.Hoster, repo Repository, cfg config.SearchConfig, logger *zap.Logger) *Service {
	if cfg.NewsResultCount <= 0 {
		cfg.NewsResultCount = 20
	}
	if cfg.PresenceResultCount <= 0 {
		cfg.PresenceResultCount = 5
	}
	if cfg.PresenceProfileLimit <= 0 {
		cfg.PresenceProfileLimit = 3
	}
	return &Service{
		gateway: gateway,
		hoster:  hoster,
		repo:    repo,
		cfg:     cfg,
		logger:  logger,
	}
}

// RunCheck runs one full safety check. A failure in the optional photo
// branch degrades to a name-only check when a name is available; a failure
// on the name-required news path fails the whole request.
func (s *Service) RunCheck(ctx context.Context, userID uuid.UUID, req CheckRequest) (*CheckResponse, error) {
	name := strings.TrimSpace(req.DateName)
	location := strings.TrimSpace(req.DateLocation)
	age := strings.TrimSpace(req.DateAge)
	hasPhoto := req.PhotoURL != "" || req.PhotoData != ""

	if name == "" && !hasPhoto {
		return nil, ErrInsufficientInput
	}

	var (
		photoProfiles []VisualMatch
		photoEvidence *int
	)
	if hasPhoto {
		profiles, err := s.runPhotoPipeline(ctx, req)
		if err != nil {
			if name == "" {
				// the photo was the only input, nothing to fall back on
				return nil, fmt.Errorf("photo check failed: %w", err)
			}
			s.logger.Warn("photo pipeline failed, continuing with name only", zap.Error(err))
		} else {
			photoProfiles = profiles
			count := len(profiles)
			photoEvidence = &count
		}
	}

	candidates := []string{name}
	if name == "" {
		candidates = ExtractNames(photoProfiles, "")
		if len(candidates) == 0 {
			return nil, ErrNoNamesExtracted
		}
	}

	summary := subjectSummary(candidates[0], location, age)

	groups, err := s.searchNews(ctx, candidates, location, age, summary)
	if err != nil {
		return nil, err
	}

	socialProfiles := s.searchPresence(ctx, candidates[0], location)

	total := 0
	var allArticles []SearchResult
	for _, g := range groups {
		total += len(g.Articles)
		allArticles = append(allArticles, g.Articles...)
	}

	confidence := ScoreConfidence(total, HasSeriousCrime(allArticles), photoEvidence)

	photoMatches := 0
	if photoEvidence != nil {
		photoMatches = *photoEvidence
	}

	resp := &CheckResponse{
		Success:        true,
		Confidence:     confidence,
		TotalResults:   total,
		ExtractedNames: candidates,
		SearchSummary:  summary,
		NewsResults:    groups,
		SocialProfiles: socialProfiles,
		PhotoMatches:   photoMatches,
		PhotoProfiles:  photoProfiles,
	}

	s.saveCheck(ctx, userID, candidates[0], resp)

	return resp, nil
}

// searchNews runs the adverse-news query once per candidate name. Queries
// are independent, so they run concurrently bounded by the candidate cap;
// results stay grouped by their source name in candidate order. Any failure
// here is fatal: the news search is the essential evidence source.
func (s *Service) searchNews(ctx context.Context, candidates []string, location, age, summary string) ([]NewsGroup, error) {
	groups := make([]NewsGroup, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxExtractedNames)
	for i, candidate := range candidates {
		g.Go(func() error {
			query := BuildNewsQuery(candidate, location, age)
			results, err := s.gateway.Search(gctx, query, s.cfg.NewsResultCount)
			if err != nil {
				return fmt.Errorf("news search failed: %w", err)
			}
			label := candidate
			if i == 0 {
				label = summary
			}
			groups[i] = NewsGroup{Name: label, Articles: FilterRelevant(results, candidate)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return groups, nil
}

// searchPresence looks for the subject's social and professional profiles.
// This is verification evidence, not risk evidence, so a failure here is
// absorbed and the report ships without profiles.
func (s *Service) searchPresence(ctx context.Context, name, location string) []SearchResult {
	query := BuildPresenceQuery(name, location)
	results, err := s.gateway.Search(ctx, query, s.cfg.PresenceResultCount)
	if err != nil {
		s.logger.Warn("presence search failed", zap.Error(err))
		return nil
	}
	if len(results) > s.cfg.PresenceProfileLimit {
		results = results[:s.cfg.PresenceProfileLimit]
	}
	return results
}

// runPhotoPipeline resolves the photo to a public URL and runs the
// reverse-image search against it.
func (s *Service) runPhotoPipeline(ctx context.Context, req CheckRequest) ([]VisualMatch, error) {
	photoURL := req.PhotoURL
	if photoURL == "" {
		data, err := decodePhotoData(req.PhotoData)
		if err != nil {
			return nil, fmt.Errorf("invalid photo payload: %w", err)
		}
		contentType := req.PhotoType
		if contentType == "" {
			contentType = "image/jpeg"
		}
		photoURL, err = s.hoster.Upload(ctx, data, contentType)
		if err != nil {
			return nil, fmt.Errorf("photo hosting failed: %w", err)
		}
	}
	return s.gateway.SearchImage(ctx, photoURL)
}

// decodePhotoData accepts raw base64 or a browser data URL
func decodePhotoData(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ";base64,"); idx >= 0 {
		encoded = encoded[idx+len(";base64,"):]
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func (s *Service) saveCheck(ctx context.Context, userID uuid.UUID, subjectName string, resp *CheckResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		s.logger.Warn("failed to encode check payload", zap.Error(err))
		return
	}

	check := &StoredCheck{
		ID:            uuid.New(),
		UserID:        userID,
		SubjectName:   subjectName,
		SearchSummary: resp.SearchSummary,
		Confidence:    resp.Confidence,
		TotalResults:  resp.TotalResults,
		PhotoMatches:  resp.PhotoMatches,
		Payload:       datatypes.JSON(payload),
	}
	if err := s.repo.SaveCheck(ctx, check); err != nil {
		// history is best-effort, the report still goes back to the user
		s.logger.Warn("failed to save check history", zap.Error(err))
	}
}

// subjectSummary renders the "who we searched for" label shown in reports
func subjectSummary(name, location, age string) string {
	summary := name
	if location != "" {
		summary += ", " + location
	}
	if age != "" {
		summary += ", age ~" + age
	}
	return summary
}
