package main

import (
	"MathTutor-Review-Backend/internal/model"
	"MathTutor-Review-Backend/internal/repository"
	"MathTutor-Review-Backend/internal/service"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <image>",
	Short: "识别一张题目图片并保存到题库",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Println("❌ 读取图片失败:", err)
			return
		}
		labels, err := repository.NewLabelRepository(cfg.Labels.JSONPath)
		if err != nil {
			fmt.Println("❌ 初始化文案失败:", err)
			return
		}

		problems, _ := newClients(cfg)
		opts := workspaceOptions(cfg).Upload
		coordinator := service.NewUploadCoordinator(problems, opts, nil)

		img := model.ImageUpload{Filename: filepath.Base(args[0]), Data: data}
		result, err := coordinator.Upload(cmd.Context(), img)
		if err != nil {
			fmt.Println("❌ 识别失败:", err)
			return
		}

		fmt.Printf("✅ 已保存题目 %s\n", result.ProblemID)
		fmt.Printf("置信度: %.2f  字数: %d  耗时: %dms\n", result.ConfidenceScore, result.WordsCount, result.ProcessingTimeMs)
		if qa := result.QualityAssessment; qa != nil {
			fmt.Printf("识别质量: %s\n", labels.QualityLabel(model.QualityScore(qa.Grade)).Text)
		}
		fmt.Println("----")
		fmt.Println(result.Content)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
