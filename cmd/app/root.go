package main

import (
	"MathTutor-Review-Backend/internal/client"
	"MathTutor-Review-Backend/internal/config"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "app",
	Short: "MathTutor 题目录入与复核服务",
	Long: `app 为 MathTutor 前端提供题目拍照录入、识别结果复核与题库浏览的后端服务，
也可以在终端中直接上传图片或查看题目列表。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "配置文件路径 (默认查找 ./config/config.yaml 或 ./config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "MathTutor 服务地址，覆盖 mathtutor_api.base_url")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		log.Fatalf("加载配置失败: %s", err)
	}
	return cfg
}

func newClients(cfg *config.Config) (*client.MathTutorApiClient, *client.KnowledgeClient) {
	api := client.NewMathTutorApiClient(cfg.MathTutorAPI.BaseURL, cfg.MathTutorAPI.TimeoutSeconds, cfg.MathTutorAPI.OCRTimeoutSeconds)
	api.APIKey = cfg.MathTutorAPI.APIKey
	api.DebugRequests = cfg.MathTutorAPI.DebugRequests

	knowledge := client.NewKnowledgeClient(cfg.MathTutorAPI.BaseURL, cfg.MathTutorAPI.TimeoutSeconds)
	knowledge.APIKey = cfg.MathTutorAPI.APIKey
	return api, knowledge
}
