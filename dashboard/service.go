package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dailyyoga/coinboard/analytics"
	"github.com/dailyyoga/coinboard/cache"
	"github.com/dailyyoga/coinboard/logger"
	"github.com/dailyyoga/coinboard/market/cryptopanic"
	"github.com/dailyyoga/coinboard/market/insight"
	"github.com/dailyyoga/coinboard/market/meme"
	"github.com/dailyyoga/coinboard/user"
)

// Service loads dashboards. Prices and news are hard requirements: if either
// producer fails on a cache miss the whole request fails. Memes and insights
// always degrade to their fallbacks instead.
type Service struct {
	log      logger.Logger
	cache    *cache.CachedStore
	prefs    PreferenceResolver
	prices   PriceSource
	news     NewsSource
	memes    MemeSource
	insights InsightSource
	recorder analytics.Recorder
	now      func() time.Time
}

// NewService creates a dashboard service.
func NewService(
	log logger.Logger,
	cached *cache.CachedStore,
	prefs PreferenceResolver,
	prices PriceSource,
	news NewsSource,
	memes MemeSource,
	insights InsightSource,
	recorder analytics.Recorder,
) (*Service, error) {
	if cached == nil {
		return nil, ErrNilCache
	}
	if prefs == nil {
		return nil, ErrNilResolver
	}
	if prices == nil || news == nil || memes == nil || insights == nil {
		return nil, ErrNilSource
	}
	if log == nil {
		log = logger.NewNop()
	}
	if recorder == nil {
		recorder = analytics.NopRecorder{}
	}
	return &Service{
		log:      log,
		cache:    cached,
		prefs:    prefs,
		prices:   prices,
		news:     news,
		memes:    memes,
		insights: insights,
		recorder: recorder,
		now:      time.Now,
	}, nil
}

// Load assembles the dashboard for one user.
func (s *Service) Load(ctx context.Context, userID string) (*Data, error) {
	start := s.now()
	event := analytics.Event{UserID: userID, RequestedAt: start}
	prefs := s.prefs.Resolve(ctx, userID)

	var (
		rawPrices map[string]map[string]float64
		newsItems []cryptopanic.NewsItem
		memePost  *meme.Meme
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawPrices, event.PricesCached, err = s.loadPrices(gctx, userID, prefs.FavoriteCoins)
		return err
	})
	g.Go(func() error {
		var err error
		newsItems, event.NewsCached, err = s.loadNews(gctx, userID, prefs.FavoriteCoins)
		return err
	})
	g.Go(func() error {
		memePost, event.MemeCached = s.loadMeme(gctx, userID)
		return nil
	})
	if err := g.Wait(); err != nil {
		event.Failed = true
		s.record(event, start)
		return nil, err
	}

	// The insight is built from the prices and news above, so it runs after
	// the fan-out.
	var insightText string
	insightText, event.InsightCached = s.loadInsight(ctx, userID, prefs, rawPrices, newsItems)

	s.record(event, start)
	return &Data{
		Prices:    toPricePoints(rawPrices),
		News:      newsItems,
		Meme:      memePost,
		AIInsight: insightText,
	}, nil
}

func (s *Service) loadPrices(ctx context.Context, userID string, coins []string) (map[string]map[string]float64, bool, error) {
	if payload, ok := s.cache.Lookup(ctx, userID, cache.KindPrices); ok {
		var cached map[string]map[string]float64
		if err := json.Unmarshal(payload, &cached); err == nil {
			// older entries may predate filtering, so filter on read too
			return filterValidPrices(cached), true, nil
		}
		s.log.Warn("discarding unreadable cached prices", zap.String("user_id", userID))
	}

	raw, err := s.prices.Prices(ctx, coins)
	if err != nil {
		return nil, false, ErrPrices(err)
	}
	valid := filterValidPrices(raw)
	if payload, err := json.Marshal(valid); err == nil {
		s.cache.Save(ctx, userID, cache.KindPrices, payload)
	}
	return valid, false, nil
}

func (s *Service) loadNews(ctx context.Context, userID string, coins []string) ([]cryptopanic.NewsItem, bool, error) {
	if payload, ok := s.cache.Lookup(ctx, userID, cache.KindNews); ok {
		var cached []cryptopanic.NewsItem
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, true, nil
		}
		s.log.Warn("discarding unreadable cached news", zap.String("user_id", userID))
	}

	items, err := s.news.News(ctx, coins)
	if err != nil {
		return nil, false, ErrNews(err)
	}
	if payload, err := json.Marshal(items); err == nil {
		s.cache.Save(ctx, userID, cache.KindNews, payload)
	}
	return items, false, nil
}

// loadMeme never fails; producer errors degrade to the static fallback.
// Under the always-refetch policy the cache is bypassed entirely: nothing
// stored would ever be read back, so neither lookups nor writes happen.
func (s *Service) loadMeme(ctx context.Context, userID string) (*meme.Meme, bool) {
	cacheable := s.cache.Policy(cache.KindMeme).Mode != cache.ModeAlways
	if cacheable {
		if payload, ok := s.cache.Lookup(ctx, userID, cache.KindMeme); ok {
			var cached meme.Meme
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, true
			}
			s.log.Warn("discarding unreadable cached meme", zap.String("user_id", userID))
		}
	}

	post, err := s.memes.Meme(ctx)
	if err != nil {
		s.log.Warn("meme fetch failed, serving fallback", zap.Error(err))
		return meme.Fallback(), false
	}
	if cacheable {
		if payload, err := json.Marshal(post); err == nil {
			s.cache.Save(ctx, userID, cache.KindMeme, payload)
		}
	}
	return post, false
}

// insightPayload is the cached insight envelope. Older deployments stored
// the bare string, so reads accept both shapes; writes always use the
// envelope.
type insightPayload struct {
	Insight string `json:"insight"`
}

// loadInsight never fails; generation errors degrade to the local fallback.
func (s *Service) loadInsight(ctx context.Context, userID string, prefs user.Preferences, rawPrices map[string]map[string]float64, newsItems []cryptopanic.NewsItem) (string, bool) {
	if payload, ok := s.cache.Lookup(ctx, userID, cache.KindInsight); ok {
		if text, err := decodeInsight(payload); err == nil {
			return text, true
		}
		s.log.Warn("discarding unreadable cached insight", zap.String("user_id", userID))
	}

	iPrefs := insight.Preferences{
		FavoriteCoins:      prefs.FavoriteCoins,
		InvestorType:       prefs.InvestorType,
		ContentPreferences: prefs.ContentPreferences,
	}
	sum := buildSummary(rawPrices, newsItems)

	text, err := s.insights.Generate(ctx, iPrefs, sum)
	if err != nil {
		s.log.Warn("insight generation failed, serving fallback", zap.Error(err))
		text = insight.Fallback(iPrefs, sum)
	}
	if payload, err := json.Marshal(insightPayload{Insight: text}); err == nil {
		s.cache.Save(ctx, userID, cache.KindInsight, payload)
	}
	return text, false
}

func (s *Service) record(event analytics.Event, start time.Time) {
	event.DurationMS = s.now().Sub(start).Milliseconds()
	s.recorder.Record(event)
}

// decodeInsight accepts the envelope form and the legacy bare string.
func decodeInsight(payload json.RawMessage) (string, error) {
	var envelope insightPayload
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Insight != "" {
		return envelope.Insight, nil
	}
	var bare string
	if err := json.Unmarshal(payload, &bare); err != nil {
		return "", err
	}
	return bare, nil
}

// filterValidPrices drops entries missing either required field. Upstream
// occasionally returns partial data for newly listed coins.
func filterValidPrices(raw map[string]map[string]float64) map[string]map[string]float64 {
	valid := make(map[string]map[string]float64, len(raw))
	for coinID, fields := range raw {
		if fields == nil {
			continue
		}
		if _, ok := fields["usd"]; !ok {
			continue
		}
		if _, ok := fields["usd_24h_change"]; !ok {
			continue
		}
		valid[coinID] = fields
	}
	return valid
}

func toPricePoints(raw map[string]map[string]float64) map[string]PricePoint {
	points := make(map[string]PricePoint, len(raw))
	for coinID, fields := range raw {
		points[coinID] = PricePoint{
			USD:          fields["usd"],
			USD24hChange: fields["usd_24h_change"],
		}
	}
	return points
}

func buildSummary(rawPrices map[string]map[string]float64, newsItems []cryptopanic.NewsItem) insight.Summary {
	prices := make(map[string]insight.PriceDelta, len(rawPrices))
	for coinID, fields := range rawPrices {
		prices[coinID] = insight.PriceDelta{
			USD:    fields["usd"],
			Change: fields["usd_24h_change"],
		}
	}
	sum := insight.Summary{Prices: prices, NewsCount: len(newsItems)}
	if len(newsItems) > 0 {
		sum.TopNewsTitle = newsItems[0].Title
	}
	return sum
}
