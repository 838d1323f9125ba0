package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Cache keys are namespaced by user id so entries for different users can
// never collide.

func TasksProcessingKey(userID string) string {
	return fmt.Sprintf("user_%s_tasks_for_processing", userID)
}

func ContextsProcessingKey(userID string) string {
	return fmt.Sprintf("user_%s_contexts_for_processing", userID)
}

func TaskListKey(userID string, params url.Values) string {
	return TaskListPrefix(userID) + encodeParams(params)
}

func TaskListPrefix(userID string) string {
	return fmt.Sprintf("user_%s_task_list_", userID)
}

func ContextListKey(userID string, params url.Values) string {
	return ContextListPrefix(userID) + encodeParams(params)
}

func ContextListPrefix(userID string) string {
	return fmt.Sprintf("user_%s_context_list_", userID)
}

// encodeParams renders query params as a stable suffix so equivalent
// requests share a cache entry regardless of parameter order.
func encodeParams(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params.Get(k)))
	}
	return strings.Join(pairs, "&")
}
