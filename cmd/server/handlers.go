package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/course-planner/internal/app"
	"github.com/rhyrak/course-planner/internal/catalog"
	"github.com/rhyrak/course-planner/internal/logging"
	"github.com/rhyrak/course-planner/internal/metrics"
	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/internal/store"
	"github.com/rhyrak/course-planner/pkg/model"
)

// StudentHeader names the cart owner. Requests without it share the
// DefaultOwner cart.
const (
	StudentHeader = "X-Student-ID"
	DefaultOwner  = "default"
)

type handlers struct {
	app *app.App
}

func newRouter(a *app.App) *gin.Engine {
	h := &handlers{app: a}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), cors())

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "courses": a.Catalog.Len()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/courses", h.listCourses)
	r.GET("/courses/:id", h.getCourse)
	r.GET("/courses/:id/bid", h.getBid)

	r.GET("/cart", h.getCart)
	r.POST("/cart/:id", h.addToCart)
	r.DELETE("/cart/:id", h.removeFromCart)
	r.GET("/cart/clashes", h.getClashes)
	r.GET("/cart/deadlines", h.getDeadlines)
	r.GET("/cart/validate", h.validateCart)

	r.POST("/recommendations", h.recommend)

	return r
}

func owner(ctx *gin.Context) string {
	if id := ctx.GetHeader(StudentHeader); id != "" {
		return id
	}
	return DefaultOwner
}

// fail maps sentinel errors to their status codes and logs everything else.
func fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownCourse), errors.Is(err, store.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicate):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logging.Ctx(ctx.Request.Context()).Error().Err(err).Str("path", ctx.FullPath()).Msg("request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *handlers) listCourses(ctx *gin.Context) {
	courses := h.app.Catalog.Courses()
	if path := ctx.Query("careerPath"); path != "" {
		var ok bool
		if courses, ok = h.app.Catalog.CareerPath(path); !ok {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown career path: " + path})
			return
		}
	}
	ctx.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *handlers) getCourse(ctx *gin.Context) {
	course, err := h.app.Catalog.Lookup(ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

func (h *handlers) getBid(ctx *gin.Context) {
	course, err := h.app.Catalog.Lookup(ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, planner.EstimateBid(course))
}

func (h *handlers) getCart(ctx *gin.Context) {
	cart, err := h.app.Cart(ctx.Request.Context(), owner(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"courses":   cart,
		"summary":   planner.Summarize(cart),
		"timetable": planner.Timetable(cart),
	})
}

func (h *handlers) addToCart(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := h.app.AddToCart(ctx.Request.Context(), owner(ctx), id); err != nil {
		metrics.CartOperations.WithLabelValues("add", "error").Inc()
		fail(ctx, err)
		return
	}
	metrics.CartOperations.WithLabelValues("add", "ok").Inc()
	h.writeCartIDs(ctx, http.StatusCreated)
}

func (h *handlers) removeFromCart(ctx *gin.Context) {
	if err := h.app.Carts.Remove(ctx.Request.Context(), owner(ctx), ctx.Param("id")); err != nil {
		metrics.CartOperations.WithLabelValues("remove", "error").Inc()
		fail(ctx, err)
		return
	}
	metrics.CartOperations.WithLabelValues("remove", "ok").Inc()
	h.writeCartIDs(ctx, http.StatusOK)
}

func (h *handlers) writeCartIDs(ctx *gin.Context, status int) {
	ids, err := h.app.Carts.IDs(ctx.Request.Context(), owner(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(status, gin.H{"cart": ids})
}

func (h *handlers) getClashes(ctx *gin.Context) {
	cart, err := h.app.Cart(ctx.Request.Context(), owner(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	clashes := planner.DetectClashes(cart)
	metrics.ClashesDetected.Add(float64(len(clashes)))
	ctx.JSON(http.StatusOK, gin.H{"clashes": clashes})
}

// getDeadlines accepts ?from=YYYY-MM-DD (default today) and ?days=N
// (default from configuration).
func (h *handlers) getDeadlines(ctx *gin.Context) {
	from := time.Now().UTC()
	if s := ctx.Query("from"); s != "" {
		t, err := time.Parse(planner.DateLayout, s)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = t
	}
	var window time.Duration
	if s := ctx.Query("days"); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil || days <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		window = time.Duration(days) * 24 * time.Hour
	}

	deadlines, busy, err := h.app.Deadlines(ctx.Request.Context(), owner(ctx), from, window)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deadlines": deadlines, "busyWeeks": busy})
}

func (h *handlers) validateCart(ctx *gin.Context) {
	cart, err := h.app.Cart(ctx.Request.Context(), owner(ctx))
	if err != nil {
		fail(ctx, err)
		return
	}
	valid, report := planner.Validate(cart, h.app.Config.Planning.MaxCredits)
	ctx.JSON(http.StatusOK, gin.H{"valid": valid, "report": report})
}

type recommendRequest struct {
	Interests   []string          `json:"interests"`
	Goals       []string          `json:"goals"`
	Constraints []string          `json:"constraints"`
	Priorities  *model.Priorities `json:"priorities"`
}

// recommend scores the catalog. An empty body reuses the owner's saved
// preferences; omitted priorities fall back to the configured ones.
func (h *handlers) recommend(ctx *gin.Context) {
	c := ctx.Request.Context()
	student := owner(ctx)

	prefs, err := h.app.SavedPreferences(c, student)
	if err != nil {
		fail(ctx, err)
		return
	}
	if ctx.Request.ContentLength != 0 {
		var req recommendRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		prefs = model.Preferences{
			Interests:   req.Interests,
			Goals:       req.Goals,
			Constraints: req.Constraints,
			Priorities:  h.app.Config.Planning.Priorities,
		}
		if req.Priorities != nil {
			prefs.Priorities = *req.Priorities
		}
	}

	recs, err := h.app.Recommend(c, student, prefs)
	if err != nil {
		fail(ctx, err)
		return
	}
	metrics.RecommendationsServed.Add(float64(len(recs)))
	ctx.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
