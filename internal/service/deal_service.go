package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"travelorbit-be/internal/config"
	"travelorbit-be/internal/constant"
	"travelorbit-be/internal/dto"
	"travelorbit-be/internal/entity"
	"travelorbit-be/internal/pkg/logger"
	"travelorbit-be/internal/repository/specification"
	"travelorbit-be/internal/repository/unitofwork"
	"travelorbit-be/pkg/embedding"
	"travelorbit-be/pkg/events"
	"travelorbit-be/pkg/llm"
	pktNats "travelorbit-be/pkg/nats"
	"travelorbit-be/pkg/planner"

	"github.com/google/uuid"
)

var (
	ErrDealNotFound = errors.New("deal not found")
	ErrDealExpired  = errors.New("deal is no longer active")
	ErrDealCapacity = errors.New("party size outside the deal's limits")
)

type IDealService interface {
	// ListToday returns the current day's batch, generating it on first
	// read if the daily job has not run yet.
	ListToday(ctx context.Context) (*dto.DealListResponse, error)

	// GenerateDaily produces today's batch. Safe to call repeatedly; it
	// no-ops when a batch for today already exists.
	GenerateDaily(ctx context.Context) error

	Recommend(ctx context.Context, req *dto.DealRecommendationRequest) ([]dto.DealResponse, error)
	Book(ctx context.Context, userId uuid.UUID, email string, dealId uuid.UUID, req *dto.BookDealRequest) (*dto.TripResponse, error)
}

type dealService struct {
	uowFactory        unitofwork.RepositoryFactory
	llmProvider       llm.LLMProvider
	embeddingProvider embedding.EmbeddingProvider
	eventPublisher    *pktNats.Publisher
	log               logger.ILogger
	perDay            int

	genMu sync.Mutex
}

func NewDealService(uowFactory unitofwork.RepositoryFactory, llmProvider llm.LLMProvider, embeddingProvider embedding.EmbeddingProvider, eventPublisher *pktNats.Publisher, log logger.ILogger, cfg *config.Config) IDealService {
	return &dealService{
		uowFactory:        uowFactory,
		llmProvider:       llmProvider,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		log:               log,
		perDay:            cfg.Deals.PerDay,
	}
}

func (s *dealService) ListToday(ctx context.Context) (*dto.DealListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	today := dateOnly(time.Now())

	count, err := uow.DealRepository().Count(ctx, specification.GeneratedOn{Date: today})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		if err := s.GenerateDaily(ctx); err != nil {
			return nil, err
		}
	}

	deals, err := uow.DealRepository().FindAll(ctx,
		specification.ActiveDeals{},
		specification.ValidAfter{Date: today},
		specification.OrderBy{Field: "generated_on", Desc: true},
		specification.OrderBy{Field: "discounted_price"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.DealListResponse{
		GeneratedOn: today.Format("2006-01-02"),
		Deals:       []dto.DealResponse{},
	}
	for _, d := range deals {
		res.Deals = append(res.Deals, dto.NewDealResponse(d))
	}
	return res, nil
}

func (s *dealService) GenerateDaily(ctx context.Context) error {
	// One generation at a time; concurrent first-readers wait and then
	// see the freshly written batch.
	s.genMu.Lock()
	defer s.genMu.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	today := dateOnly(time.Now())

	count, err := uow.DealRepository().Count(ctx, specification.GeneratedOn{Date: today})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	deals, usedFallback := s.generateBatch(ctx, today)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for _, deal := range deals {
		if err := uow.DealRepository().Create(ctx, deal); err != nil {
			return err
		}
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.log.Info("deals", "daily deal batch generated", map[string]interface{}{
		"count":    len(deals),
		"fallback": usedFallback,
	})

	if s.eventPublisher != nil {
		evt := events.NewDealsGenerated(today.Format("2006-01-02"), len(deals), usedFallback)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("deals", "failed to publish deals generated event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return nil
}

// generatedDeal mirrors the JSON shape the model is asked for.
type generatedDeal struct {
	Destination     string            `json:"destination"`
	Country         string            `json:"country"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	OriginalPrice   float64           `json:"original_price"`
	DiscountedPrice float64           `json:"discounted_price"`
	DurationDays    int               `json:"duration_days"`
	MinPeople       int               `json:"min_people"`
	MaxPeople       int               `json:"max_people"`
	Inclusions      []string          `json:"inclusions"`
	International   bool              `json:"international"`
	Itinerary       *entity.Itinerary `json:"itinerary"`
}

// generateBatch asks the model for today's offers and falls back to the
// static catalogue when the output is unusable.
func (s *dealService) generateBatch(ctx context.Context, today time.Time) ([]*entity.Deal, bool) {
	prompt := fmt.Sprintf(constant.DealGenerationPrompt, s.perDay)

	llmCtx, cancel := context.WithTimeout(ctx, 90*time.Second)
	defer cancel()

	raw, err := s.llmProvider.Generate(llmCtx, prompt, llm.WithTemperature(0.9))
	if err != nil {
		s.log.Warn("deals", "deal generation model call failed, using catalogue", map[string]interface{}{
			"error": err.Error(),
		})
		return s.fallbackBatch(today), true
	}

	blob := planner.ExtractJSONArray(raw)
	var parsed []generatedDeal
	if blob == "" || json.Unmarshal([]byte(blob), &parsed) != nil || len(parsed) == 0 {
		s.log.Warn("deals", "deal generation output unparseable, using catalogue", nil)
		return s.fallbackBatch(today), true
	}

	var deals []*entity.Deal
	for _, g := range parsed {
		if g.Destination == "" || g.DiscountedPrice <= 0 || g.DiscountedPrice >= g.OriginalPrice {
			continue
		}
		deal := &entity.Deal{
			Id:              uuid.New(),
			Destination:     g.Destination,
			Title:           g.Title,
			Description:     g.Description,
			OriginalPrice:   g.OriginalPrice,
			DiscountedPrice: g.DiscountedPrice,
			Currency:        "INR",
			ValidUntil:      today.AddDate(0, 0, 1),
			MinPeople:       maxInt(g.MinPeople, 1),
			MaxPeople:       maxInt(g.MaxPeople, maxInt(g.MinPeople, 1)),
			DurationDays:    maxInt(g.DurationDays, 1),
			Inclusions:      g.Inclusions,
			Itinerary:       g.Itinerary,
			International:   g.International,
			IsActive:        true,
			GeneratedOn:     today,
			CreatedAt:       time.Now(),
		}
		if g.Country != "" {
			country := g.Country
			deal.Country = &country
		}
		s.embedDeal(ctx, deal)
		deals = append(deals, deal)
		if len(deals) == s.perDay {
			break
		}
	}

	if len(deals) == 0 {
		return s.fallbackBatch(today), true
	}
	return deals, false
}

func (s *dealService) fallbackBatch(today time.Time) []*entity.Deal {
	var deals []*entity.Deal
	for i, f := range fallbackCatalogue {
		if i == s.perDay {
			break
		}
		country := f.country
		deal := &entity.Deal{
			Id:              uuid.New(),
			Destination:     f.destination,
			Country:         &country,
			Title:           f.title,
			Description:     f.description,
			OriginalPrice:   f.originalPrice,
			DiscountedPrice: f.discountedPrice,
			Currency:        "INR",
			ValidUntil:      today.AddDate(0, 0, 1),
			MinPeople:       1,
			MaxPeople:       8,
			DurationDays:    f.durationDays,
			Inclusions:      f.inclusions,
			International:   f.international,
			IsActive:        true,
			GeneratedOn:     today,
			CreatedAt:       time.Now(),
		}
		s.embedDeal(context.Background(), deal)
		deals = append(deals, deal)
	}
	return deals
}

// embedDeal attaches an interest embedding so the deal shows up in
// semantic recommendations. Failures leave the deal unembedded, which
// only excludes it from similarity search.
func (s *dealService) embedDeal(ctx context.Context, deal *entity.Deal) {
	if s.embeddingProvider == nil {
		return
	}
	text := deal.Destination + " " + deal.Title + " " + strings.Join(deal.Inclusions, " ")
	resp, err := s.embeddingProvider.Generate(text, "retrieval.passage")
	if err != nil {
		s.log.Warn("deals", "deal embedding failed", map[string]interface{}{
			"destination": deal.Destination,
			"error":       err.Error(),
		})
		return
	}
	deal.Embedding = resp.Embedding.Values
}

func (s *dealService) Recommend(ctx context.Context, req *dto.DealRecommendationRequest) ([]dto.DealResponse, error) {
	if s.embeddingProvider == nil {
		return nil, errors.New("recommendations are not configured")
	}

	resp, err := s.embeddingProvider.Generate(req.Query, "retrieval.query")
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 5
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	deals, err := uow.DealRepository().SearchSimilar(ctx, resp.Embedding.Values, limit)
	if err != nil {
		return nil, err
	}

	res := []dto.DealResponse{}
	for _, d := range deals {
		res = append(res, dto.NewDealResponse(d))
	}
	return res, nil
}

// Book instantiates a planned trip from a deal. The trip skips the whole
// planner conversation and goes straight to checkout.
func (s *dealService) Book(ctx context.Context, userId uuid.UUID, email string, dealId uuid.UUID, req *dto.BookDealRequest) (*dto.TripResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	deal, err := uow.DealRepository().FindOne(ctx, specification.ByID{ID: dealId})
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, ErrDealNotFound
	}
	if !deal.IsActive || deal.ValidUntil.Before(dateOnly(time.Now())) {
		return nil, ErrDealExpired
	}
	if req.PeopleCount < deal.MinPeople || req.PeopleCount > deal.MaxPeople {
		return nil, ErrDealCapacity
	}

	title := deal.Title
	adults := req.PeopleCount
	duration := deal.DurationDays
	total := deal.DiscountedPrice * float64(req.PeopleCount)

	trip := &entity.Trip{
		Id:            uuid.New(),
		UserId:        userId,
		Email:         email,
		ToCity:        &deal.Destination,
		AdultsCount:   &adults,
		DurationDays:  &duration,
		Passengers:    req.Passengers,
		Title:         &title,
		Itinerary:     deal.Itinerary,
		Status:        entity.TripStatusPlanned,
		TotalPrice:    &total,
		Currency:      deal.Currency,
		IsDealBooking: true,
		SourceDealId:  &deal.Id,
		CreatedAt:     time.Now(),
	}
	if req.ContactPhone != "" {
		phone := req.ContactPhone
		trip.ContactPhone = &phone
	}
	if req.StartDate != "" {
		if start, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			trip.StartDate = &start
			end := start.AddDate(0, 0, deal.DurationDays-1)
			trip.EndDate = &end
		}
	}
	if deal.Description != "" {
		desc := deal.Description
		trip.AiSummaryText = &desc
	}

	if err := uow.TripRepository().Create(ctx, trip); err != nil {
		return nil, err
	}

	res := dto.NewTripResponse(trip)
	return &res, nil
}

type fallbackDeal struct {
	destination     string
	country         string
	title           string
	description     string
	originalPrice   float64
	discountedPrice float64
	durationDays    int
	inclusions      []string
	international   bool
}

// fallbackCatalogue serves when the model is down or returns garbage, so
// the deals page is never empty.
var fallbackCatalogue = []fallbackDeal{
	{
		destination:     "Goa",
		country:         "India",
		title:           "Goa Beach Escape",
		description:     "Four days of beaches, shacks and sunsets in North Goa. Stay near Baga with breakfast included.",
		originalPrice:   14000,
		discountedPrice: 9999,
		durationDays:    4,
		inclusions:      []string{"hotel", "breakfast", "airport transfer"},
	},
	{
		destination:     "Manali",
		country:         "India",
		title:           "Manali Mountain Retreat",
		description:     "Snow-capped views, Old Manali cafes and a day trip to Solang Valley.",
		originalPrice:   12000,
		discountedPrice: 8499,
		durationDays:    5,
		inclusions:      []string{"hotel", "breakfast", "local sightseeing"},
	},
	{
		destination:     "Kerala",
		country:         "India",
		title:           "Kerala Backwaters Cruise",
		description:     "Houseboat night on the Alleppey backwaters plus Munnar tea gardens.",
		originalPrice:   18000,
		discountedPrice: 13499,
		durationDays:    5,
		inclusions:      []string{"houseboat", "all meals on boat", "hotel"},
	},
	{
		destination:     "Shimla",
		country:         "India",
		title:           "Shimla Colonial Charm",
		description:     "Mall Road strolls, Kufri excursion and toy train ride through the hills.",
		originalPrice:   10000,
		discountedPrice: 7299,
		durationDays:    3,
		inclusions:      []string{"hotel", "breakfast", "toy train tickets"},
	},
	{
		destination:     "Dubai",
		country:         "UAE",
		title:           "Dubai City Lights",
		description:     "Burj Khalifa, desert safari and Dubai Mall across four action-packed days.",
		originalPrice:   45000,
		discountedPrice: 34999,
		durationDays:    4,
		inclusions:      []string{"hotel", "breakfast", "desert safari", "city tour"},
		international:   true,
	},
	{
		destination:     "Bali",
		country:         "Indonesia",
		title:           "Bali Island Bliss",
		description:     "Ubud rice terraces, Uluwatu cliffs and Seminyak beach clubs over six days.",
		originalPrice:   52000,
		discountedPrice: 39999,
		durationDays:    6,
		inclusions:      []string{"villa stay", "breakfast", "temple tour", "airport transfer"},
		international:   true,
	},
	{
		destination:     "Maldives",
		country:         "Maldives",
		title:           "Maldives Lagoon Luxury",
		description:     "Overwater villa, snorkelling in turquoise lagoons and sunset cruises.",
		originalPrice:   95000,
		discountedPrice: 74999,
		durationDays:    4,
		inclusions:      []string{"water villa", "all meals", "snorkelling gear", "seaplane transfer"},
		international:   true,
	},
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
