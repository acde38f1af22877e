package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ScheduleKeyPrefix = "schedule:%d"
	UserKeyPrefix     = "user:%d"
	TemplateKeyPrefix = "template:%d"
	TemplateListKey   = "templates:all"
)

const (
	ScheduleTTL = 2 * time.Minute
	UserTTL     = 5 * time.Minute
	TemplateTTL = 10 * time.Minute
)

func ScheduleKey(userID uint) string {
	return fmt.Sprintf(ScheduleKeyPrefix, userID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TemplateKey(templateID uint) string {
	return fmt.Sprintf(TemplateKeyPrefix, templateID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateSchedule(ctx context.Context, userID uint) {
	Invalidate(ctx, ScheduleKey(userID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateTemplate(ctx context.Context, templateID uint) {
	Invalidate(ctx, TemplateKey(templateID))
	Invalidate(ctx, TemplateListKey)
}
