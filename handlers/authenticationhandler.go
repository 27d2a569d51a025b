package handlers

import (
	"errors"
	"net/http"
	"time"

	"escapenote-server/auth"
	"escapenote-server/db"
	"escapenote-server/externals"
	"escapenote-server/model"
	"go.uber.org/zap"
)

const (
	refreshTokenCookie  = "refreshToken"
	registerTokenCookie = "registerToken"
	tokenType           = "bearer"
)

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyEmailCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type phoneRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
}

type verifyPhoneCodeRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
}

type nicknameRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=20"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupByEmailRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=72"`
	Code           string `json:"code" validate:"required,len=6,numeric"`
	Nickname       string `json:"nickname" validate:"required,min=2,max=20"`
	Avatar         string `json:"avatar"`
	Type           string `json:"type"`
	AgreeMarketing bool   `json:"agreeMarketing"`
}

type signupBySocialRequest struct {
	Nickname       string `json:"nickname" validate:"required,min=2,max=20"`
	Avatar         string `json:"avatar"`
	Type           string `json:"type"`
	AgreeMarketing bool   `json:"agreeMarketing"`
}

type socialRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type editProfileRequest struct {
	Avatar    *string `json:"avatar" validate:"omitempty,max=500"`
	Username  *string `json:"username" validate:"omitempty,max=50"`
	Headline  *string `json:"headline" validate:"omitempty,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
	Website   *string `json:"website" validate:"omitempty,max=500"`
	Instagram *string `json:"instagram" validate:"omitempty,max=100"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

type tokenResponse struct {
	TokenType   string `json:"tokenType"`
	AccessToken string `json:"accessToken"`
}

type authResponse struct {
	TokenType    string     `json:"tokenType"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiredAt    int        `json:"expiredAt"`
	User         model.User `json:"user"`
}

type registerResponse struct {
	TokenType     string `json:"tokenType"`
	RegisterToken string `json:"registerToken"`
	Provider      string `json:"provider"`
	Email         string `json:"email"`
}

// login issues a new token pair, stores the refresh token and sets its cookie
func (h *Handler) login(w http.ResponseWriter, r *http.Request, userID string) {
	tokens, err := h.tokens.GenerateTokens(userID)
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, "Error generating tokens", err)
		return
	}

	user, err := h.userDAO.SetRefreshToken(r.Context(), userID, tokens.RefreshToken)
	if err != nil {
		h.daoError(w, "Error storing refresh token", err)
		return
	}

	h.setCookie(w, refreshTokenCookie, tokens.RefreshToken, auth.RefreshTokenExpireIn)
	h.writeJSON(w, http.StatusOK, authResponse{
		TokenType:    tokenType,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiredAt:    int(auth.RefreshTokenExpireIn.Seconds()),
		User:         user,
	})
}

func (h *Handler) setCookie(w http.ResponseWriter, name string, value string, expireIn time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Domain:   h.cfg.Domain,
		Path:     "/",
		MaxAge:   int(expireIn.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) deleteCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Domain:   h.cfg.Domain,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// loginForAccessToken is the OAuth2 password flow used by API clients
func (h *Handler) loginForAccessToken(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid form", err)
		return
	}

	user, err := h.userDAO.GetUserByEmail(r.Context(), r.PostForm.Get("username"))
	if err != nil || !auth.VerifyPassword(r.PostForm.Get("password"), user.Password) {
		h.unauthorized(w, errors.New("incorrect username or password"))
		return
	}

	tokens, err := h.tokens.GenerateTokens(user.UserID)
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, "Error generating tokens", err)
		return
	}
	h.writeJSON(w, http.StatusOK, tokenResponse{TokenType: tokenType, AccessToken: tokens.AccessToken})
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.userDAO.GetUserById(r.Context(), userID(r))
	if err != nil {
		h.daoError(w, "Error getting user", err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) editProfile(w http.ResponseWriter, r *http.Request) {
	var body editProfileRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid profile", err)
		return
	}

	user, err := h.userDAO.UpdateProfile(r.Context(), userID(r), db.ProfileUpdate{
		Avatar:    body.Avatar,
		Username:  h.sanitizeOptional(body.Username),
		Headline:  h.sanitizeOptional(body.Headline),
		Bio:       h.sanitizeOptional(body.Bio),
		Website:   body.Website,
		Instagram: body.Instagram,
	})
	if err != nil {
		h.daoError(w, "Error updating profile", err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

func (h *Handler) sanitizeOptional(text *string) *string {
	if text == nil {
		return nil
	}
	sanitized := h.sanitize(*text)
	return &sanitized
}

// changePassword requires the current password unless the account was created
// with a social login and has none yet
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	var body changePasswordRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid password", err)
		return
	}

	user, err := h.userDAO.GetUserById(r.Context(), userID(r))
	if err != nil {
		h.daoError(w, "Error getting user", err)
		return
	}
	if user.HasPassword {
		if body.OldPassword == "" {
			h.httpError(w, http.StatusBadRequest, "Current password is required", nil)
			return
		}
		if !auth.VerifyPassword(body.OldPassword, user.Password) {
			h.httpError(w, http.StatusBadRequest, "Wrong password", nil)
			return
		}
	}

	hashedPassword, err := auth.HashPassword(body.NewPassword)
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, "Error hashing password", err)
		return
	}
	err = h.userDAO.SetPassword(r.Context(), user.UserID, hashedPassword)
	if err != nil {
		h.daoError(w, "Error changing password", err)
		return
	}
	h.writeJSON(w, http.StatusOK, true)
}

// sendPassword replaces the password of the account with a temporary one and mails it
func (h *Handler) sendPassword(w http.ResponseWriter, r *http.Request) {
	var body emailRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid email", err)
		return
	}

	_, err = h.userDAO.GetUserByEmail(r.Context(), body.Email)
	if err != nil {
		h.daoError(w, "Error getting user", err)
		return
	}

	password, err := auth.GeneratePassword()
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, "Error generating password", err)
		return
	}
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, "Error hashing password", err)
		return
	}

	// the old password stays valid until the new one was delivered
	subject, html := externals.TemporaryPasswordMail(password)
	err = h.mailer.SendMail(r.Context(), body.Email, subject, html)
	if err != nil {
		h.httpError(w, http.StatusBadGateway, "Error sending mail", err)
		return
	}

	err = h.userDAO.SetPasswordByEmail(r.Context(), body.Email, hashedPassword)
	if err != nil {
		h.daoError(w, "Error changing password", err)
		return
	}
	h.writeJSON(w, http.StatusOK, true)
}

func (h *Handler) checkDuplicateEmail(w http.ResponseWriter, r *http.Request) {
	var body emailRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid email", err)
		return
	}

	exists, err := h.userDAO.EmailExists(r.Context(), body.Email)
	if err != nil {
		h.daoError(w, "Error checking email", err)
		return
	}
	if exists {
		h.httpError(w, http.StatusConflict, "Email already in use", nil)
		return
	}
	h.writeJSON(w, http.StatusOK, true)
}

func (h *Handler) checkDuplicateNickname(w http.ResponseWriter, r *http.Request) {
	var body nicknameRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid nickname", err)
		return
	}
	if !h.nicknameAvailable(w, r, body.Nickname) {
		return
	}
	h.writeJSON(w, http.StatusOK, true)
}

// nicknameAvailable writes a 409 and returns false when the nickname is reserved or taken
func (h *Handler) nicknameAvailable(w http.ResponseWriter, r *http.Request, nickname string) bool {
	if !auth.IsNicknameAllowed(nickname) {
		h.httpError(w, http.StatusConflict, "Nickname not allowed", nil)
		return false
	}
	exists, err := h.userDAO.NicknameExists(r.Context(), nickname)
	if err != nil {
		h.daoError(w, "Error checking nickname", err)
		return false
	}
	if exists {
		h.httpError(w, http.StatusConflict, "Nickname already in use", nil)
		return false
	}
	return true
}

func (h *Handler) sendEmailCode(w http.ResponseWriter, r *http.Request) {
	var body emailRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid email", err)
		return
	}

	exists, err := h.userDAO.EmailExists(r.Context(), body.Email)
	if err != nil {
		h.daoError(w, "Error checking email", err)
		return
	}
	if exists {
		h.httpError(w, http.StatusConflict, "Email already in use", nil)
		return
	}

	code, ok := h.createCode(w, r, body.Email)
	if !ok {
		return
	}

	subject, html := externals.VerificationCodeMail(code)
	err = h.mailer.SendMail(r.Context(), body.Email, subject, html)
	if err != nil {
		h.httpError(w, http.StatusBadGateway, "Error sending mail", err)
		return
	}
	h.writeJSON(w, http.StatusOK, true)
}

func (h *Handler) sendPhoneCode(w http.ResponseWriter, r *http.Request) {
	var body phoneRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid phone number", err)
		return
	}

	code, ok := h.createCode(w, r, body.PhoneNumber)
	if !ok {
		return
	}

	err = h.sms.SendSMS(r.Context(), body.PhoneNumber, externals.VerificationCodeSMS(code))
	if err != nil {
		h.httpError(w, http.StatusBadGateway, "Error sending sms", err)
		return
	}
	h.writeJSON(w, http.StatusOK, true)
}

func (h *Handler) createCode(w http.ResponseWriter, r *http.Request, identifier string) (string, bool) {
	code, err := auth.GenerateCode()
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, "Error generating code", err)
		return "", false
	}
	err = h.verificationCodeDAO.CreatePendingCode(r.Context(), identifier, code)
	if err != nil {
		h.daoError(w, "Error storing code", err)
		return "", false
	}
	return code, true
}

func (h *Handler) verifyEmailCode(w http.ResponseWriter, r *http.Request) {
	var body verifyEmailCodeRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid code", err)
		return
	}
	h.verifyCode(w, r, body.Email, body.Code)
}

func (h *Handler) verifyPhoneCode(w http.ResponseWriter, r *http.Request) {
	var body verifyPhoneCodeRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid code", err)
		return
	}
	h.verifyCode(w, r, body.PhoneNumber, body.Code)
}

// verifyCode moves the pending code of identifier to VERIFIED, older verified
// codes become invalid
func (h *Handler) verifyCode(w http.ResponseWriter, r *http.Request, identifier string, code string) {
	err := h.verificationCodeDAO.InvalidateVerified(r.Context(), identifier)
	if err != nil {
		h.daoError(w, "Error invalidating codes", err)
		return
	}

	verificationCode, err := h.verificationCodeDAO.FindLatest(r.Context(), identifier, model.VerificationPending)
	if err != nil {
		h.daoError(w, "No pending verification", err)
		return
	}
	if verificationCode.Code != code {
		h.httpError(w, http.StatusConflict, "Wrong identifier/code combination", nil)
		return
	}

	err = h.verificationCodeDAO.UpdateStatus(r.Context(), verificationCode.VerificationCodeID, model.VerificationVerified)
	if err != nil {
		h.daoError(w, "Error verifying code", err)
		return
	}
	h.writeJSON(w, http.StatusOK, true)
}

func (h *Handler) signupByEmail(w http.ResponseWriter, r *http.Request) {
	var body signupByEmailRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid signup", err)
		return
	}

	verificationCode, err := h.verificationCodeDAO.FindLatest(r.Context(), body.Email, model.VerificationVerified)
	if err != nil {
		h.daoError(w, "Email not verified", err)
		return
	}
	if verificationCode.Code != body.Code {
		h.httpError(w, http.StatusConflict, "Wrong email/code combination", nil)
		return
	}

	exists, err := h.userDAO.EmailExists(r.Context(), body.Email)
	if err != nil {
		h.daoError(w, "Error checking email", err)
		return
	}
	if exists {
		h.httpError(w, http.StatusConflict, "Email already in use", nil)
		return
	}
	if !h.nicknameAvailable(w, r, body.Nickname) {
		return
	}

	hashedPassword, err := auth.HashPassword(body.Password)
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, "Error hashing password", err)
		return
	}

	email := body.Email
	user, err := h.userDAO.AddUser(r.Context(), model.User{
		Email:             &email,
		EmailVerified:     true,
		Password:          hashedPassword,
		Avatar:            body.Avatar,
		Nickname:          body.Nickname,
		Type:              body.Type,
		AgreeOlder14Years: true,
		AgreeTerms:        true,
		AgreePrivacy:      true,
		AgreeMarketing:    body.AgreeMarketing,
	}, "")
	if err != nil {
		h.daoError(w, "Error creating user", err)
		return
	}

	err = h.verificationCodeDAO.UpdateStatus(r.Context(), verificationCode.VerificationCodeID, model.VerificationComplete)
	if err != nil {
		h.logger.Warn("Error completing verification code", zap.String("email", body.Email), zap.Error(err))
	}

	h.login(w, r, user.UserID)
}

func (h *Handler) loginByEmail(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid login", err)
		return
	}

	user, err := h.userDAO.GetUserByEmail(r.Context(), body.Email)
	if err != nil {
		h.daoError(w, "Error getting user", err)
		return
	}
	if !auth.VerifyPassword(body.Password, user.Password) {
		h.httpError(w, http.StatusBadRequest, "Wrong password", nil)
		return
	}

	h.login(w, r, user.UserID)
}

// refresh rotates the token pair. The refresh token must be the one stored on
// the user, so that a logout revokes it.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		h.httpError(w, http.StatusBadRequest, "Refresh token not found", err)
		return
	}

	claims, err := h.tokens.ParseRefreshToken(cookie.Value)
	if err != nil {
		h.deleteCookie(w, refreshTokenCookie)
		h.unauthorized(w, err)
		return
	}

	user, err := h.userDAO.GetUserById(r.Context(), claims.Subject)
	if err != nil || user.RefreshToken != cookie.Value {
		h.deleteCookie(w, refreshTokenCookie)
		h.unauthorized(w, errors.New("refresh token revoked"))
		return
	}

	h.login(w, r, user.UserID)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.deleteCookie(w, refreshTokenCookie)

	err := h.userDAO.ClearRefreshToken(r.Context(), userID(r))
	if err != nil {
		h.daoError(w, "Error logging out", err)
		return
	}
	h.writeJSON(w, http.StatusOK, true)
}

func (h *Handler) verifySocial(w http.ResponseWriter, r *http.Request) (externals.SocialIdentity, bool) {
	var body socialRequest
	err := h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid social login", err)
		return externals.SocialIdentity{}, false
	}

	identity, err := h.social.VerifyIDToken(r.Context(), body.IDToken)
	if err != nil {
		h.unauthorized(w, err)
		return externals.SocialIdentity{}, false
	}
	return identity, true
}

// loginBySocial logs in an existing user, 404 tells the client to go through pre-signup
func (h *Handler) loginBySocial(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.verifySocial(w, r)
	if !ok {
		return
	}

	user, err := h.userDAO.GetUserByEmail(r.Context(), identity.Email)
	if err != nil {
		h.daoError(w, "Error getting user", err)
		return
	}
	err = h.userDAO.EnsureAccount(r.Context(), user.UserID, identity.Provider)
	if err != nil {
		h.daoError(w, "Error linking account", err)
		return
	}

	h.login(w, r, user.UserID)
}

func (h *Handler) preSignupBySocial(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.verifySocial(w, r)
	if !ok {
		return
	}

	registerToken, err := h.tokens.GenerateRegisterToken(identity.Email, identity.Provider)
	if err != nil {
		h.httpError(w, http.StatusInternalServerError, "Error generating register token", err)
		return
	}

	h.setCookie(w, registerTokenCookie, registerToken, auth.RegisterTokenExpireIn)
	h.writeJSON(w, http.StatusOK, registerResponse{
		TokenType:     tokenType,
		RegisterToken: registerToken,
		Provider:      identity.Provider,
		Email:         identity.Email,
	})
}

// signupBySocial creates the user of a register token, sent as a bearer token or as cookie
func (h *Handler) signupBySocial(w http.ResponseWriter, r *http.Request) {
	registerToken, err := bearerToken(r)
	if err != nil {
		cookie, cookieErr := r.Cookie(registerTokenCookie)
		if cookieErr != nil {
			h.unauthorized(w, err)
			return
		}
		registerToken = cookie.Value
	}
	claims, err := h.tokens.ParseRegisterToken(registerToken)
	if err != nil {
		h.unauthorized(w, err)
		return
	}

	var body signupBySocialRequest
	err = h.decodeBody(r, &body)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid signup", err)
		return
	}

	email := claims.Subject
	exists, err := h.userDAO.EmailExists(r.Context(), email)
	if err != nil {
		h.daoError(w, "Error checking email", err)
		return
	}
	if exists {
		h.httpError(w, http.StatusConflict, "Email already in use", nil)
		return
	}
	if !h.nicknameAvailable(w, r, body.Nickname) {
		return
	}

	user, err := h.userDAO.AddUser(r.Context(), model.User{
		Email:             &email,
		EmailVerified:     true,
		Avatar:            body.Avatar,
		Nickname:          body.Nickname,
		Type:              body.Type,
		AgreeOlder14Years: true,
		AgreeTerms:        true,
		AgreePrivacy:      true,
		AgreeMarketing:    body.AgreeMarketing,
	}, claims.Provider)
	if err != nil {
		h.daoError(w, "Error creating user", err)
		return
	}

	h.deleteCookie(w, registerTokenCookie)
	h.login(w, r, user.UserID)
}
