package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleAgent Role = "AGENT"
)

// Permissions is the per-user flag set controlling what a user can do and
// which application views are enabled for them.
type Permissions struct {
	CanEditAllFields bool `json:"canEditAllFields" gorm:"column:pode_editar_campos"`
	CanDeleteTickets bool `json:"canDeleteTickets" gorm:"column:pode_excluir_chamados"`
	CanManageUsers   bool `json:"canManageUsers" gorm:"column:pode_gerenciar_usuarios"`
	CanViewDashboard bool `json:"canViewDashboard" gorm:"column:pode_ver_dashboard"`
	CanViewTickets   bool `json:"canViewTickets" gorm:"column:pode_ver_chamados"`
	CanViewAssets    bool `json:"canViewAssets" gorm:"column:pode_ver_ativos"`
	CanViewAdmin     bool `json:"canViewAdmin" gorm:"column:pode_ver_admin"`
}

type User struct {
	ID           string      `json:"id" gorm:"primaryKey"`
	Name         string      `json:"name" gorm:"column:nome;not null"`
	Email        string      `json:"email" gorm:"column:email;not null;uniqueIndex"`
	Role         Role        `json:"role" gorm:"column:perfil;default:AGENT"`
	PasswordHash string      `json:"-" gorm:"column:senha"`
	IsActive     bool        `json:"is_active" gorm:"column:ativo;default:true"`
	Permissions  Permissions `json:"permissions" gorm:"embedded"`
	CreatedAt    time.Time   `json:"created_at" gorm:"column:data_criacao"`
	UpdatedAt    time.Time   `json:"updated_at" gorm:"column:data_atualizacao"`
}

func (User) TableName() string {
	return "usuarios"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Claims are the JWT claims carried by both access and refresh tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and validates session tokens.
type TokenGenerator interface {
	GenerateAccessToken(userID, email string) (string, error)
	GenerateRefreshToken(userID, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type ctxKey string

const ContextUserKey ctxKey = "auth_user"

// UserFromContext returns the authenticated user placed in the request
// context by the auth middleware. This is the "current session": there is no
// ambient global, each request resolves its own user.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
