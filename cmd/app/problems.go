package main

import (
	"MathTutor-Review-Backend/internal/model"
	"MathTutor-Review-Backend/internal/repository"
	"MathTutor-Review-Backend/internal/service"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listPage         int
	listSize         int
	listStatus       string
	listQuery        string
	listDifficulty   []int
	listSources      []string
	listQuestionType []string
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "分页查看题库，并在本页内筛选",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		status := model.ProblemStatus(listStatus)
		if status != "" && !status.Valid() {
			fmt.Println("❌ 未知的题目状态:", listStatus)
			return
		}
		labels, err := repository.NewLabelRepository(cfg.Labels.JSONPath)
		if err != nil {
			fmt.Println("❌ 初始化文案失败:", err)
			return
		}

		problems, _ := newClients(cfg)
		dir := service.NewProblemDirectory(problems, cfg.Directory.DefaultPageSize)
		snap, err := dir.FetchPage(cmd.Context(), listPage, listSize, status)
		if err != nil {
			fmt.Println("❌ 获取题目列表失败:", err)
			return
		}

		filter := model.ProblemFilter{Query: listQuery, Difficulty: listDifficulty, Source: listSources}
		for _, qt := range listQuestionType {
			filter.QuestionType = append(filter.QuestionType, model.QuestionType(qt))
		}
		items := dir.ApplyFilters(filter)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\t题型\t难度\t状态\t来源\t内容")
		fmt.Fprintln(w, "--\t----\t----\t----\t----\t----")
		for _, p := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				p.ProblemID, labels.QuestionTypeLabel(p.QuestionType), labels.DifficultyLabel(p.DifficultyValue()),
				p.Status, p.Source, preview(p.Content, 30))
		}
		w.Flush()

		st := dir.Stats()
		fmt.Printf("\n第 %d 页，显示 %d/%d 条，服务端共 %d 条（OCR %d，待处理 %d，已完成 %d）\n",
			snap.Page.Current, len(items), st.Loaded, st.Total, st.OCR, st.Pending, st.Completed)
	},
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func init() {
	problemsCmd.Flags().IntVar(&listPage, "page", 1, "页码")
	problemsCmd.Flags().IntVar(&listSize, "size", 0, "每页条数 (默认使用 directory.default_page_size)")
	problemsCmd.Flags().StringVar(&listStatus, "status", "", "按状态查询 (pending|completed|archived)")
	problemsCmd.Flags().StringVarP(&listQuery, "q", "q", "", "按内容或题目ID筛选")
	problemsCmd.Flags().IntSliceVar(&listDifficulty, "difficulty", nil, "难度筛选，可重复")
	problemsCmd.Flags().StringSliceVar(&listSources, "source", nil, "来源筛选，可重复")
	problemsCmd.Flags().StringSliceVar(&listQuestionType, "type", nil, "题型筛选，可重复")
	rootCmd.AddCommand(problemsCmd)
}
