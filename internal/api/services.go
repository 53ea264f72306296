package api

import "github.com/inkwell/inkwell-server/internal/service"

// Services groups the business services used by the API server.
type Services struct {
	User *service.UserService
	Post *service.PostService
	Tag  *service.TagService
}
