package v1

import (
	"h2o-bounty/internal/api/v1/handlers"
	"h2o-bounty/internal/middleware"
	"h2o-bounty/internal/websocket"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/health", handlers.Health)
	api.Get("/nav", middleware.OptionalToken, handlers.Nav)
	api.Get("/wallet", handlers.ServerWallet)

	// Wallet session
	sessionRoutes := api.Group("/session")
	sessionRoutes.Post("/challenge", handlers.Challenge)
	sessionRoutes.Post("/verify", handlers.Verify)
	sessionRoutes.Post("/disconnect", middleware.UseToken, handlers.Disconnect)

	// Boards, tasks and submissions
	boards := api.Group("/boards")
	boards.Get("/", handlers.ListBoards)
	boards.Get("/:boardId", handlers.GetBoard)
	boards.Post("/", middleware.UseToken, handlers.CreateBoard)
	boards.Post("/:boardId/join", middleware.UseToken, handlers.JoinBoard)
	boards.Post("/:boardId/rewards", middleware.UseToken, handlers.AddRewardToBoard)
	boards.Post("/:boardId/close", middleware.UseToken, handlers.CloseBoard)

	boards.Post("/:boardId/tasks", middleware.UseToken, handlers.CreateTask)
	boards.Get("/:boardId/tasks/:taskId", handlers.GetTask)
	boards.Post("/:boardId/tasks/:taskId/cancel", middleware.UseToken, handlers.CancelTask)
	boards.Post("/:boardId/tasks/:taskId/reviewers", middleware.UseToken, handlers.AddReviewer)

	boards.Get("/:boardId/tasks/:taskId/submissions/:submitter", handlers.GetSubmission)
	boards.Post("/:boardId/tasks/:taskId/submissions", middleware.UseToken, handlers.SubmitProof)
	boards.Post("/:boardId/tasks/:taskId/submissions/:submitter/review", middleware.UseToken, handlers.ReviewSubmission)

	// Profiles
	profiles := api.Group("/profiles")
	profiles.Get("/", handlers.ListProfiles)
	profiles.Post("/", middleware.UseToken, handlers.CreateProfile)
	profiles.Get("/:address", handlers.GetProfile)
	profiles.Get("/:address/boards/joined", handlers.GetJoinedBoards)
	profiles.Get("/:address/boards/created", handlers.GetCreatedBoards)

	// Pages
	pageRoutes := api.Group("/pages", middleware.OptionalToken)
	pageRoutes.Get("/boards/:boardId", handlers.GetBoardPage)
	pageRoutes.Get("/boards/:boardId/tasks/:taskId", handlers.GetTaskPage)
	pageRoutes.Post("/boards/:boardId/join", middleware.UseToken, handlers.JoinBoardPage)
	pageRoutes.Post("/boards/:boardId/tasks/:taskId/submit", middleware.UseToken, handlers.SubmitTaskPage)

	// Transactions
	txRoutes := api.Group("/transactions")
	txRoutes.Get("/", middleware.OptionalToken, handlers.ListTransactions)
	txRoutes.Post("/:hash/confirm", middleware.UseToken, handlers.ConfirmTransaction)

	api.Post("/faucet", handlers.Fund)

	// File Upload
	uploadRoutes := api.Group("/upload")
	uploadRoutes.Post("/board_image", middleware.UseToken, handlers.UploadBoardImage)
	uploadRoutes.Get("/:filename", handlers.GetFile)
}

// RegisterWebsocket mounts the page-state stream at /ws/pages/<topic>.
func RegisterWebsocket(app *fiber.App, hub *websocket.Hub) {
	app.Use("/ws", websocket.RequireUpgrade)
	app.Get("/ws/pages/*", hub.Handler())
}
