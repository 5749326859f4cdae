package main

import (
	"MathTutor-Review-Backend/internal/api"
	"MathTutor-Review-Backend/internal/config"
	"MathTutor-Review-Backend/internal/repository"
	"MathTutor-Review-Backend/internal/router"
	"MathTutor-Review-Backend/internal/service"
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "监听地址，覆盖 server.port (例如 :8080)")
	rootCmd.AddCommand(serveCmd)
}

func workspaceOptions(cfg *config.Config) service.WorkspaceOptions {
	return service.WorkspaceOptions{
		Upload: service.UploadOptions{
			MaxFileSize:      cfg.Upload.MaxFileSizeBytes,
			ProgressInterval: cfg.ProgressInterval(),
			RequestTimeout:   cfg.OCRTimeout(),
		},
		PageSize: cfg.Directory.DefaultPageSize,
		IdleTTL:  cfg.IdleTTL(),
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig(cmd)

	labels, err := repository.NewLabelRepository(cfg.Labels.JSONPath)
	if err != nil {
		log.Fatalf("初始化文案失败: %s", err)
	}

	problems, knowledge := newClients(cfg)
	manager := service.NewWorkspaceManager(problems, knowledge, workspaceOptions(cfg))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go manager.RunJanitor(ctx)

	handler := api.NewHandler(manager, labels, cfg.Upload.MaxFileSizeBytes)
	r := router.SetupRouter(handler, cfg.CORS.AllowedOrigins)

	fmt.Printf("服务启动于 http://localhost%s\n", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		log.Fatalf("服务启动失败: %s", err)
	}
	return nil
}
