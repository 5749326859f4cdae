package router

import (
	"MathTutor-Review-Backend/internal/api"
	"MathTutor-Review-Backend/internal/model"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators 在 gin 的校验引擎上注册 question_type 与 problem_status。
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		log.Println("警告：gin 校验引擎不是 validator/v10，自定义校验未注册。")
		return
	}
	_ = v.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		return model.QuestionType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("problem_status", func(fl validator.FieldLevel) bool {
		return model.ProblemStatus(fl.Field().String()).Valid()
	})
}

func SetupRouter(h *api.Handler, allowedOrigins []string) *gin.Engine {
	RegisterValidators()
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowHeaders = append(config.AllowHeaders, "Content-Type")
	r.Use(cors.New(config))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", h.Health)
		apiV1.POST("/workspaces", h.CreateWorkspace)
		apiV1.DELETE("/workspaces/:id", h.CloseWorkspace)

		ws := apiV1.Group("/workspaces/:id")
		{
			ws.GET("/upload", h.GetUpload)
			ws.POST("/upload", h.UploadImage)
			ws.POST("/upload/reset", h.ResetUpload)

			ws.GET("/review", h.GetReview)
			ws.POST("/review/load", h.LoadProblem)
			ws.POST("/review/edit", h.BeginEdit)
			ws.DELETE("/review/edit", h.CancelEdit)
			ws.PATCH("/review/draft", h.UpdateDraft)
			ws.POST("/review/commit", h.CommitEdit)
			ws.POST("/review/status", h.ChangeStatus)
			ws.POST("/review/re-recognize", h.ReRecognize)
			ws.DELETE("/review/problem", h.DeleteProblem)

			ws.GET("/problems", h.FetchPage)
			ws.POST("/problems/more", h.LoadMore)
			ws.GET("/problems/filter", h.FilterProblems)
			ws.GET("/problems/stats", h.DirectoryStats)

			ws.GET("/knowledge/curriculums", h.ListCurriculums)
			ws.GET("/knowledge/curriculums/find", h.FindCurriculum)
			ws.GET("/knowledge/curriculums/:cid", h.GetCurriculum)
			ws.GET("/knowledge/modules/:mid", h.GetModule)
			ws.GET("/knowledge/topics/:tid", h.GetTopic)
			ws.GET("/knowledge/health", h.KnowledgeHealth)
		}
	}

	return r
}
