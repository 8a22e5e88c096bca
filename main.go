package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	maxDisplayedResults       = 100
	defaultDateWindowDays     = 14
	colaIDLength              = 14
	chartWeeklyThresholdDays  = 60
	chartMonthlyThresholdDays = 365
	defaultCommodityColor     = "#8D8D8D"
	devCORSOriginLocalhost    = "http://localhost:5173"
	devCORSOriginLoopback     = "http://127.0.0.1:5173"
)

var (
	commodityOrder    = []string{"wine", "beer", "distilled_spirits"}
	commodityColorMap = map[string]string{
		"wine":              "#DD35DD",
		"beer":              "#ECA349",
		"distilled_spirits": "#5DCB8B",
	}
)

type Config struct {
	Addr          string
	Env           string
	Database      string
	Token         string
	DBHost        string
	DBPort        string
	DBUser        string
	DBSSLMode     string
	PublicBaseURL string
}

type App struct {
	cfg *Config
	db  *sql.DB
	log *slog.Logger

	// test hooks for the search pipeline
	queryColas          func(ctx context.Context, filters ColaFilters) ([]Cola, error)
	fetchColaImages     func(ctx context.Context, colaIDs []string) (map[string][]ColaImage, error)
	fetchColaViolations func(ctx context.Context, colaIDs []string) (map[string][]Violation, error)
	loadFilterOptions   func(ctx context.Context) (*FilterOptions, error)
}

type AnalysisItem struct {
	Type            string   `json:"analysis_item_type"`
	Text            string   `json:"text"`
	ModelConfidence *float64 `json:"model_confidence"`
	BoundingBox     *string  `json:"bounding_box"`
}

type ColaImage struct {
	PublicURL     *string        `json:"public_url"`
	ImgType       string         `json:"img_type"`
	FileName      string         `json:"file_name"`
	DimensionsTxt string         `json:"dimensions_txt"`
	AnalysisItems []AnalysisItem `json:"analysis_items"`
}

type Violation struct {
	Comment  string `json:"violation_comment"`
	Type     string `json:"violation_type"`
	Group    string `json:"violation_group"`
	Subgroup string `json:"violation_subgroup"`
	CFRRef   string `json:"cfr_ref"`
}

type Cola struct {
	ColaID         string      `json:"cola_id"`
	BrandName      *string     `json:"brand_name"`
	FancifulName   *string     `json:"fanciful_name"`
	Origin         *string     `json:"origin"`
	ClassType      *string     `json:"class_type"`
	Commodity      string      `json:"commodity"`
	Source         *string     `json:"source"`
	PermitNum      *string     `json:"permit_num"`
	SerialNum      *string     `json:"serial_num"`
	CompletedDate  *string     `json:"completed_date"`
	ImageCount     int         `json:"image_count"`
	AnalysisCount  int         `json:"analysis_count"`
	ViolationCount int         `json:"violation_count"`
	DetailsURL     *string     `json:"details_url"`
	FormURL        *string     `json:"form_url"`
	InternalURL    *string     `json:"internal_url"`
	CommodityIcon  string      `json:"commodity_icon"`
	FlagIcon       string      `json:"flag_icon"`
	Images         []ColaImage `json:"images"`
	Violations     []Violation `json:"violations"`
}

type CommodityCount struct {
	Commodity string `json:"commodity"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	Count     int    `json:"count"`
}

type SearchResult struct {
	Records          []Cola           `json:"records"`
	TotalCount       int              `json:"total_count"`
	DisplayedCount   int              `json:"displayed_count"`
	Limited          bool             `json:"limited"`
	Message          string           `json:"message"`
	CommoditySummary []CommodityCount `json:"commodity_summary"`
	Chart            ChartData        `json:"chart"`
}

type CommodityOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type FilterOptions struct {
	Origins          []string          `json:"origins"`
	ClassTypes       []string          `json:"class_types"`
	Brands           []string          `json:"brands"`
	ViolationGroups  []string          `json:"violation_groups"`
	Commodities      []CommodityOption `json:"commodities"`
	MinDate          string            `json:"min_date"`
	MaxDate          string            `json:"max_date"`
	DefaultStartDate string            `json:"default_start_date"`
}

type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

func main() {
	if err := loadDotEnvFile(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("configuration error", "err", err)
		fmt.Fprintln(os.Stderr, "Set COLA_DB_TOKEN to your analytical database token and COLA_DATABASE to the database name.")
		fmt.Fprintln(os.Stderr, "Both can also be placed in a .env file next to the binary.")
		os.Exit(1)
	}

	db, err := sql.Open("pgx", cfg.databaseDSN())
	if err != nil {
		logger.Error("failed to open database", "database", cfg.Database, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to connect to analytical database", "database", cfg.Database, "err", err)
		fmt.Fprintln(os.Stderr, "Could not reach the COLA analytical database.")
		fmt.Fprintln(os.Stderr, "Verify COLA_DB_TOKEN is valid and not expired, and that COLA_DATABASE names an accessible database.")
		os.Exit(1)
	}

	app := &App{
		cfg: cfg,
		db:  db,
		log: logger,
	}
	app.queryColas = app.storeQueryColas
	app.fetchColaImages = app.storeFetchColaImages
	app.fetchColaViolations = app.storeFetchColaViolations
	app.loadFilterOptions = app.storeLoadFilterOptions

	logger.Info("runtime configuration", "env", cfg.Env, "addr", cfg.Addr, "database", cfg.Database)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(app.loggingMiddleware())
	r.Use(app.corsMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.GET("/colas", app.searchColasHandler)
		api.GET("/colas/export", app.exportColasHandler)
		api.GET("/filters", app.filterOptionsHandler)
	}

	app.log.Info("starting COLA explorer API", "addr", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		panic(err)
	}
}

func loadConfig() (*Config, error) {
	token := strings.TrimSpace(os.Getenv("COLA_DB_TOKEN"))
	if token == "" {
		return nil, fmt.Errorf("COLA_DB_TOKEN must be configured")
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "development"
	}

	publicBase := strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/")

	cfg := &Config{
		Addr:          valueOrDefault("COLA_API_ADDR", ":8080"),
		Env:           env,
		Database:      valueOrDefault("COLA_DATABASE", "cola_data"),
		Token:         token,
		DBHost:        valueOrDefault("COLA_DB_HOST", "127.0.0.1"),
		DBPort:        valueOrDefault("COLA_DB_PORT", "5432"),
		DBUser:        valueOrDefault("COLA_DB_USER", "cola_reader"),
		DBSSLMode:     valueOrDefault("COLA_DB_SSLMODE", "disable"),
		PublicBaseURL: publicBase,
	}
	return cfg, nil
}

func (cfg *Config) databaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(cfg.DBUser), url.QueryEscape(cfg.Token),
		cfg.DBHost, cfg.DBPort, cfg.Database, cfg.DBSSLMode,
	)
}

func loadDotEnvFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.Trim(strings.TrimSpace(line[idx+1:]), "\"")
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func (a *App) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
		a.log.Info("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}

func (a *App) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := strings.TrimSpace(c.GetHeader("Origin"))
		if a.isAllowedCORSOrigin(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Headers", "Content-Type")
			c.Header("Access-Control-Allow-Methods", "GET,OPTIONS")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *App) isAllowedCORSOrigin(origin string) bool {
	if origin == "" || a.cfg == nil {
		return false
	}
	if a.cfg.PublicBaseURL != "" && origin == a.cfg.PublicBaseURL {
		return true
	}
	if !strings.EqualFold(a.cfg.Env, "development") {
		return false
	}
	return origin == devCORSOriginLocalhost || origin == devCORSOriginLoopback
}

func writeAPIError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Code, "message": apiErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": err.Error()})
}
