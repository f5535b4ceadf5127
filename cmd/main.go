package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/JNU-econovation/EATceed-AI/config"
	"github.com/JNU-econovation/EATceed-AI/controllers"
	"github.com/JNU-econovation/EATceed-AI/jobs"
	"github.com/JNU-econovation/EATceed-AI/llm"
	"github.com/JNU-econovation/EATceed-AI/logger"
	"github.com/JNU-econovation/EATceed-AI/repository"
	"github.com/JNU-econovation/EATceed-AI/routes"
	"github.com/JNU-econovation/EATceed-AI/services"
	"github.com/JNU-econovation/EATceed-AI/vectordb"
)

func main() {
	logger.InitializeLogger()
	defer logger.Close()

	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	rdb, err := config.NewRedis(&cfg.Redis)
	if err != nil {
		logger.Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	llmClient := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ChatModel, cfg.EmbeddingModel)
	vectorClient := vectordb.NewClient(cfg.VectorIndexHost, cfg.VectorAPIKey)

	memberRepo := repository.NewMemberRepository(db)
	mealRepo := repository.NewMealRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	quotaSvc := services.NewQuotaService(rdb, cfg.RateLimit)
	foodImageSvc := services.NewFoodImageService(llmClient, llmClient, vectorClient, cfg.PromptPath)
	nutritionSvc := services.NewNutritionService(memberRepo, mealRepo)
	statusSvc := services.NewAnalysisStatusService(analysisRepo)
	adviceGen := services.NewLLMAdviceGenerator(llmClient, cfg.PromptPath)
	analysisSvc := services.NewAnalysisService(memberRepo, nutritionSvc, statusSvc, adviceGen)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := jobs.NewAnalysisScheduler(analysisSvc, cfg.AnalysisHour)
	scheduler.Start(ctx)

	r := routes.SetupRouter(
		controllers.NewFoodImageController(quotaSvc, foodImageSvc),
		controllers.NewAnalysisController(statusSvc),
	)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
