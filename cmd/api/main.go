package main

import (
	"context"
	"os"

	"dealscope/internal/catalog"
	"dealscope/internal/domain/sqlite"
	"dealscope/internal/domain/sqlite/repository"
	handler2 "dealscope/internal/http/handler"
	"dealscope/internal/infrastructure/groq"
	"dealscope/internal/service"
	"dealscope/internal/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/dealscope/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			log.Warnf("no .env file loaded: %v", err)
		}
	}

	// Static company catalog
	cat, err := catalog.Load()
	if err != nil {
		panic(err)
	}
	log.Infof("Catalog loaded with %d companies", cat.Len())

	// Init SQLite
	db, err := sqlite.Init(os.Getenv("DB_PATH"))
	if err != nil {
		panic(err)
	}
	if err := sqlite.Seed(db); err != nil {
		panic(err)
	}

	// Enrichment provider client
	groqClient := groq.NewClient(
		os.Getenv("GROQ_API_KEY"),
		os.Getenv("GROQ_MODEL"),
		os.Getenv("GROQ_BASE_URL"),
	)

	// Getting repos
	noteRepo := repository.NewNoteRepository(db)
	listRepo := repository.NewListRepository(db)
	searchRepo := repository.NewSearchRepository(db)
	enrichmentRepo := repository.NewEnrichmentRepository(db)

	// Getting services
	companyService := service.NewCompanyService(cat, noteRepo, validate)
	enrichService := service.NewEnrichService(groqClient, cat, enrichmentRepo, validate)
	listService := service.NewListService(listRepo, cat, validate)
	searchService := service.NewSearchService(searchRepo, cat, validate)

	// Getting handlers
	companyRoutes := handler2.NewCompanyRoute(companyService)
	enrichRoutes := handler2.NewEnrichRoute(enrichService)
	listRoutes := handler2.NewListRoute(listService)
	searchRoutes := handler2.NewSearchRoute(searchService)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("2M"))

	// Discovery
	e.GET("/api/companies", companyRoutes.GetCompanies)
	e.GET("/api/companies/meta", companyRoutes.GetMeta)
	e.GET("/api/companies/:id", companyRoutes.GetCompany)

	// Notes
	e.GET("/api/companies/:id/notes", companyRoutes.GetNote)
	e.PUT("/api/companies/:id/notes", companyRoutes.SaveNote)

	// Enrichment
	e.POST("/api/enrich", enrichRoutes.Enrich)
	e.POST("/api/companies/:id/enrich", enrichRoutes.EnrichCompany)
	e.GET("/api/companies/:id/enrichment", enrichRoutes.GetCachedEnrichment)

	// Lists
	e.GET("/api/lists", listRoutes.GetLists)
	e.POST("/api/lists", listRoutes.CreateList)
	e.GET("/api/lists/:id", listRoutes.GetList)
	e.PATCH("/api/lists/:id", listRoutes.UpdateList)
	e.DELETE("/api/lists/:id", listRoutes.DeleteList)
	e.PUT("/api/lists/:id/companies/:companyId", listRoutes.AddCompany)
	e.DELETE("/api/lists/:id/companies/:companyId", listRoutes.RemoveCompany)
	e.GET("/api/lists/:id/export", listRoutes.Export)

	// Saved searches
	e.GET("/api/searches", searchRoutes.GetSearches)
	e.POST("/api/searches", searchRoutes.CreateSearch)
	e.DELETE("/api/searches/:id", searchRoutes.DeleteSearch)
	e.GET("/api/searches/:id/run", searchRoutes.RunSearch)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":" + port()); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("nodupes", validators.NoDupes)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "7070"
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
