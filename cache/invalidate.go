package cache

import (
	"context"

	"tasknest/backend/config"
)

// InvalidateUserTasks clears every task-related cache entry for a user:
// the processing snapshot plus all list-view entries. Runs after any task
// write; cache errors are logged, never propagated.
func InvalidateUserTasks(ctx context.Context, store Store, userID string) {
	if userID == "" {
		return
	}
	if err := store.Delete(ctx, TasksProcessingKey(userID)); err != nil {
		config.Logger.Warn("Failed to clear tasks processing cache:", err)
	}
	deletePrefix(ctx, store, TaskListPrefix(userID), "task")
}

// InvalidateUserContexts clears the context processing snapshot and all
// context list-view entries for a user.
func InvalidateUserContexts(ctx context.Context, store Store, userID string) {
	if userID == "" {
		return
	}
	if err := store.Delete(ctx, ContextsProcessingKey(userID)); err != nil {
		config.Logger.Warn("Failed to clear contexts processing cache:", err)
	}
	deletePrefix(ctx, store, ContextListPrefix(userID), "context")
}

func deletePrefix(ctx context.Context, store Store, prefix, kind string) {
	pd, ok := store.(PrefixDeleter)
	if !ok {
		config.Logger.Warnf("Cache backend does not support prefix deletion. %s list caches may not be fully cleared.", kind)
		return
	}
	if err := pd.DeletePrefix(ctx, prefix); err != nil {
		config.Logger.Warnf("Failed to clear %s list caches (prefix %s): %v", kind, prefix, err)
		return
	}
	config.Logger.Infof("Cleared %s caches (pattern: %s*)", kind, prefix)
}
