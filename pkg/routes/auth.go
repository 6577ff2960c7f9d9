package routes

import (
	"github.com/DedS3t/monopoly-engine/app/controllers"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
)

func AuthRoutes(a *fiber.App, ac *controllers.AuthController) {
	route := a.Group("/user")

	route.Post("/register", ac.CreateUser)
	route.Post("/login", ac.Login)
	route.Get("/cur", jwtware.New(jwtware.Config{SigningKey: ac.Secret}), ac.Cur)
}
