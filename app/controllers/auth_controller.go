package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/DedS3t/monopoly-engine/app/models"
	jwt "github.com/form3tech-oss/jwt-go"
	"github.com/gofiber/fiber/v2"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// UserRecords stores accounts.
type UserRecords interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserData(id string) (*models.User, error)
}

type AuthController struct {
	Users  UserRecords
	Secret []byte
	TTL    time.Duration
	Log    logrus.FieldLogger
}

func (ac *AuthController) CreateUser(c *fiber.Ctx) error {
	dto := new(models.UserDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	dto.Email = strings.TrimSpace(strings.ToLower(dto.Email))
	if dto.Email == "" || len(dto.Pass) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and a password of at least 6 characters are required"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Pass), bcrypt.DefaultCost)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	user := &models.User{
		Id:           uuid.NewV4().String(),
		Email:        dto.Email,
		PasswordHash: string(hash),
	}
	if err := ac.Users.CreateUser(user); err != nil {
		ac.Log.WithError(err).Warn("user not created")
		return c.SendStatus(fiber.StatusConflict)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.Id})
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	dto := new(models.UserDto)
	if err := c.BodyParser(dto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	user, err := ac.Users.GetUserByEmail(strings.TrimSpace(strings.ToLower(dto.Email)))
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(dto.Pass)); err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	t, err := ac.token(user.Id)
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	return c.JSON(fiber.Map{"access_token": t})
}

func (ac *AuthController) token(userID string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	ttl := ac.TTL
	if ttl == 0 {
		ttl = 72 * time.Hour
	}
	claims["exp"] = time.Now().Add(ttl).Unix()
	return token.SignedString(ac.Secret)
}

// UserID reads the id placed in the context by the jwt middleware.
func UserID(c *fiber.Ctx) (string, error) {
	user, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return "", errors.New("no token")
	}
	claims, ok := user.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected claims")
	}
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("token has no user_id")
	}
	return id, nil
}

// Cur returns the account behind the bearer token.
func (ac *AuthController) Cur(c *fiber.Ctx) error {
	id, err := UserID(c)
	if err != nil {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	user, err := ac.Users.GetUserData(id)
	if err != nil {
		ac.Log.WithError(err).WithField("user", id).Debug("token for unknown user")
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.JSON(fiber.Map{"id": user.Id, "email": user.Email})
}
