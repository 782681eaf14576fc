package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/storeadmin/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// AccountAuthState 账号鉴权快照
// 仅用于服务端 Redis 缓存，避免每个请求都回表
type AccountAuthState struct {
	AccountID    uint   `json:"account_id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Status       string `json:"status"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"`
	UpdatedAt    int64  `json:"updated_at"`
}

func accountAuthStateKey(accountID uint) string {
	return fmt.Sprintf("auth:account:%d", accountID)
}

// BuildAccountAuthState 从账号模型构建鉴权快照
func BuildAccountAuthState(account *models.Account, role string) *AccountAuthState {
	if account == nil {
		return nil
	}
	return &AccountAuthState{
		AccountID:    account.ID,
		Email:        account.Email,
		FullName:     account.FullName,
		Status:       account.Status,
		Role:         role,
		TokenVersion: account.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
}

// GetAccountAuthState 获取账号鉴权快照
func GetAccountAuthState(ctx context.Context, accountID uint) (*AccountAuthState, bool, error) {
	if accountID == 0 {
		return nil, false, nil
	}
	var state AccountAuthState
	hit, err := GetJSON(ctx, accountAuthStateKey(accountID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAccountAuthState 写入账号鉴权快照
func SetAccountAuthState(ctx context.Context, state *AccountAuthState) error {
	if state == nil || state.AccountID == 0 {
		return nil
	}
	return SetJSON(ctx, accountAuthStateKey(state.AccountID), state, authStateCacheTTL)
}

// DelAccountAuthState 删除账号鉴权快照
func DelAccountAuthState(ctx context.Context, accountID uint) error {
	if accountID == 0 {
		return nil
	}
	return Del(ctx, accountAuthStateKey(accountID))
}
