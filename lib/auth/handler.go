package authhandler

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rain-knows/approval-system/db"
	usersstore "github.com/rain-knows/approval-system/lib/users/store"
	authutils "github.com/rain-knows/approval-system/lib/utils/auth-utils"
	"github.com/rain-knows/approval-system/models"
	authapimodels "github.com/rain-knows/approval-system/models/api/auth"
	usersapimodels "github.com/rain-knows/approval-system/models/api/users"
)

type Provider interface {
	Login(data authapimodels.LoginData) (resp authapimodels.JWTResponse, hMsg string, err error)
	Refresh(data authapimodels.RefreshData) (resp authapimodels.JWTResponse, hMsg string, err error)
	Profile(userID string) (view usersapimodels.UserView, hMsg string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

const msgBadCredentials = "неверное имя пользователя или пароль"

func (i impl) Login(data authapimodels.LoginData) (resp authapimodels.JWTResponse, hMsg string, err error) {
	logger := log.WithField("username", data.Username)
	err = data.Validate()
	if err != nil {
		return authapimodels.JWTResponse{}, err.Error(), nil
	}
	rec, err := i.store.GetByUsername(data.Username)
	if err != nil {
		logger.WithError(err).Error("ошибка получения пользователя при входе")
		return authapimodels.JWTResponse{}, "", err
	}
	if rec == nil || rec.Password != authutils.GetMD5Hash(data.Password) {
		return authapimodels.JWTResponse{}, msgBadCredentials, nil
	}
	if rec.Status == models.UserStatusBlocked {
		return authapimodels.JWTResponse{}, "учетная запись заблокирована", nil
	}
	resp, err = i.issueTokens(rec.ID, rec.GetDisplayName(), rec.GetRole())
	if err != nil {
		logger.WithError(err).Error("ошибка выпуска токена")
		return authapimodels.JWTResponse{}, "", err
	}
	now := time.Now()
	err = i.store.Update(rec.ID, map[string]interface{}{"last_login_at": now})
	if err != nil {
		logger.WithError(err).Error("ошибка обновления времени входа")
	}
	logger.Info("пользователь вошел в систему")
	return resp, "", nil
}

func (i impl) Refresh(data authapimodels.RefreshData) (resp authapimodels.JWTResponse, hMsg string, err error) {
	err = data.Validate()
	if err != nil {
		return authapimodels.JWTResponse{}, err.Error(), nil
	}
	claims, err := authutils.ParseToken(data.RefreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, "refresh токен недействителен", nil
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return authapimodels.JWTResponse{}, "refresh токен недействителен", nil
	}
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, "", err
	}
	if rec == nil {
		return authapimodels.JWTResponse{}, "пользователь не найден", nil
	}
	if rec.Status == models.UserStatusBlocked {
		return authapimodels.JWTResponse{}, "учетная запись заблокирована", nil
	}
	resp, err = i.issueTokens(rec.ID, rec.GetDisplayName(), rec.GetRole())
	if err != nil {
		return authapimodels.JWTResponse{}, "", err
	}
	return resp, "", nil
}

func (i impl) Profile(userID string) (view usersapimodels.UserView, hMsg string, err error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		log.WithField("user_id", userID).
			WithError(err).Error("ошибка получения профиля")
		return usersapimodels.UserView{}, "", err
	}
	if rec == nil {
		return usersapimodels.UserView{}, "пользователь не найден", nil
	}
	return usersapimodels.UserConvert(*rec), "", nil
}

func (i impl) issueTokens(userID, name string, role models.UserRole) (resp authapimodels.JWTResponse, err error) {
	token, err := authutils.GetToken(userID, name, role)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	refresh, err := authutils.GetRefreshToken(userID, name)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	return authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refresh,
	}, nil
}
