package handler

import (
	"devconnect/internal/usecase"
)

var (
	authHandler *AuthHandler
	userHandler *UserHandler
	chatHandler *ChatHandler
	postHandler *PostHandler
	jobHandler  *JobHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	chatUseCase *usecase.ChatUseCase,
	postUseCase *usecase.PostUseCase,
	jobUseCase *usecase.JobUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	postHandler = NewPostHandler(postUseCase)
	jobHandler = NewJobHandler(jobUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetPostHandler() *PostHandler {
	return postHandler
}

func GetJobHandler() *JobHandler {
	return jobHandler
}
