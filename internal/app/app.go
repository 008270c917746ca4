// Package app wires configuration, catalog, rule table and cart storage
// together for the command line and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rhyrak/course-planner/internal/catalog"
	"github.com/rhyrak/course-planner/internal/config"
	"github.com/rhyrak/course-planner/internal/csvio"
	"github.com/rhyrak/course-planner/internal/logging"
	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/internal/store"
	"github.com/rhyrak/course-planner/pkg/model"
)

type App struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	Rules   *planner.RuleSet
	Store   store.Store
	Carts   *store.CartStore
}

// Open loads everything cfg points at. Close releases the store.
func Open(cfg *config.Config) (*App, error) {
	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	rules, err := LoadRules(cfg)
	if err != nil {
		return nil, err
	}

	s, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	return New(cfg, cat, rules, s), nil
}

func New(cfg *config.Config, cat *catalog.Catalog, rules *planner.RuleSet, s store.Store) *App {
	return &App{
		Config:  cfg,
		Catalog: cat,
		Rules:   rules,
		Store:   s,
		Carts:   store.NewCartStore(s),
	}
}

func (a *App) Close() error {
	return a.Store.Close()
}

// LoadCatalog reads the catalog in the configured format.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	switch cfg.Catalog.Format {
	case "csv":
		cat, report, err := csvio.LoadCatalog(cfg.PlannerConfiguration(), cfg.Delimiter())
		if err != nil {
			return nil, fmt.Errorf("load csv catalog: %w", err)
		}
		if report != "" {
			logging.Warn().Str("report", report).Msg("catalog loaded with skipped rows")
		}
		return cat, nil
	default:
		return catalog.LoadYAML(cfg.Catalog.Path)
	}
}

// LoadRules returns the configured rule table, or the built-in one limited
// to planning.recommendation_limit.
func LoadRules(cfg *config.Config) (*planner.RuleSet, error) {
	if cfg.Catalog.Rules == "" {
		rules := planner.DefaultRuleSet()
		rules.Limit = cfg.Planning.RecommendationLimit
		return rules, nil
	}
	return planner.LoadRuleSet(cfg.Catalog.Rules)
}

func OpenStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store.Driver == "memory" {
		return store.NewMemoryStore(), nil
	}
	return store.OpenBadger(cfg.Store.Dir)
}

// Cart resolves the owner's stored cart against the catalog. Ids that are no
// longer in the catalog are skipped.
func (a *App) Cart(ctx context.Context, owner string) ([]*model.Course, error) {
	ids, err := a.Carts.IDs(ctx, owner)
	if err != nil {
		return nil, err
	}
	courses := make([]*model.Course, 0, len(ids))
	for _, id := range ids {
		c, err := a.Catalog.Lookup(id)
		if err != nil {
			logging.Ctx(ctx).Warn().Str("owner", owner).Str("course", id).Msg("cart course missing from catalog")
			continue
		}
		courses = append(courses, c)
	}
	return courses, nil
}

// AddToCart adds a catalog course to the owner's cart.
func (a *App) AddToCart(ctx context.Context, owner string, id string) error {
	if _, err := a.Catalog.Lookup(id); err != nil {
		return err
	}
	return a.Carts.Add(ctx, owner, id)
}

// Recommend scores the catalog for the owner and remembers prefs.
func (a *App) Recommend(ctx context.Context, owner string, prefs model.Preferences) ([]model.Recommendation, error) {
	cart, err := a.Cart(ctx, owner)
	if err != nil {
		return nil, err
	}
	if err := a.Carts.SavePreferences(ctx, owner, prefs); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("owner", owner).Msg("could not save preferences")
	}
	return a.Rules.Recommend(a.Catalog.Courses(), cart, prefs), nil
}

// SavedPreferences returns the owner's last preferences, or empty ones with
// the configured default priorities.
func (a *App) SavedPreferences(ctx context.Context, owner string) (model.Preferences, error) {
	prefs, err := a.Carts.Preferences(ctx, owner)
	if errors.Is(err, store.ErrNotFound) {
		return model.Preferences{Priorities: a.Config.Planning.Priorities}, nil
	}
	return prefs, err
}

// Deadlines lists upcoming cart deadlines and the weeks that look crowded.
func (a *App) Deadlines(ctx context.Context, owner string, from time.Time, window time.Duration) ([]model.Deadline, []string, error) {
	cart, err := a.Cart(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	if window <= 0 {
		window = a.Config.Planning.DeadlineWindow
	}
	deadlines := planner.UpcomingDeadlines(cart, a.Catalog.Holidays(), from, window)
	return deadlines, planner.BusyWeeks(deadlines, a.Config.Planning.BusyWeekThreshold), nil
}
