package models

import "time"

// App представляет приложение, сгенерированное по промпту пользователя.
type App struct {
	ID           int64      `json:"id" db:"id"`
	AppName      string     `json:"appName" db:"app_name"`
	Cover        string     `json:"cover" db:"cover"`
	InitPrompt   string     `json:"initPrompt" db:"init_prompt"`
	CodeGenType  string     `json:"codeGenType" db:"code_gen_type"`
	DeployKey    string     `json:"deployKey" db:"deploy_key"`
	DeployedTime *time.Time `json:"deployedTime,omitempty" db:"deployed_time"`
	Priority     int        `json:"priority" db:"priority"`
	UserID       int64      `json:"userId" db:"user_id"`
	CreatedAt    time.Time  `json:"createTime" db:"created_at"`
	UpdatedAt    time.Time  `json:"updateTime" db:"updated_at"`
}

// Приоритет "избранных" приложений.
const GoodAppPriority = 99

// Максимальная длина автоматически сгенерированного имени приложения
// (первые символы initPrompt).
const AppNameMaxLen = 12
