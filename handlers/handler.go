package handlers

import (
	"escapenote-server/auth"
	"escapenote-server/cache"
	"escapenote-server/config"
	"escapenote-server/db"
	"escapenote-server/externals"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the collaborators built by main and injected in the handlers
type Dependencies struct {
	Config         config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	Tokens         *auth.TokenIssuer
	Social         externals.SocialVerifier
	Mailer         externals.Mailer
	SMS            externals.SMSSender
	Images         externals.ImageStore
	RecommendCache *cache.RecommendCache
}

type Handler struct {
	cfg    config.Config
	logger *zap.Logger
	db     *gorm.DB

	cafeDAO             *db.CafeDAO
	themeDAO            *db.ThemeDAO
	cafeReviewDAO       *db.CafeReviewDAO
	themeReviewDAO      *db.ThemeReviewDAO
	userDAO             *db.UserDAO
	verificationCodeDAO *db.VerificationCodeDAO
	catalogDAO          *db.CatalogDAO

	tokens         *auth.TokenIssuer
	social         externals.SocialVerifier
	mailer         externals.Mailer
	sms            externals.SMSSender
	images         externals.ImageStore
	recommendCache *cache.RecommendCache

	validate  *validator.Validate
	sanitizer *bluemonday.Policy
}

func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		cfg:                 deps.Config,
		logger:              deps.Logger,
		db:                  deps.DB,
		cafeDAO:             db.NewCafeDAO(deps.DB),
		themeDAO:            db.NewThemeDAO(deps.DB),
		cafeReviewDAO:       db.NewCafeReviewDAO(deps.DB),
		themeReviewDAO:      db.NewThemeReviewDAO(deps.DB),
		userDAO:             db.NewUserDAO(deps.DB),
		verificationCodeDAO: db.NewVerificationCodeDAO(deps.DB),
		catalogDAO:          db.NewCatalogDAO(deps.DB),
		tokens:              deps.Tokens,
		social:              deps.Social,
		mailer:              deps.Mailer,
		sms:                 deps.SMS,
		images:              deps.Images,
		recommendCache:      deps.RecommendCache,
		validate:            validator.New(validator.WithRequiredStructEnabled()),
		// review and profile texts are plain text
		sanitizer: bluemonday.StrictPolicy(),
	}
}
