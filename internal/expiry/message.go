package expiry

import (
	"fmt"

	"github.com/beptroly/notifier/internal/push"
)

const notificationTitle = "Cảnh báo hết hạn! ⏳"

// ActionFindRecipe tells the app to open recipe search for the suggested
// ingredient when the user taps the notification.
const ActionFindRecipe = "FIND_RECIPE"

// Compose builds the notification for one target's item list. The first name
// is first-by-scan-order; with several items the rest are summarized as a
// count. Item lists are never empty here: a target is only created when its
// first item resolves.
func Compose(items []string) push.Notification {
	first := items[0]

	var body string
	if len(items) == 1 {
		body = fmt.Sprintf("%q sẽ hết hạn vào ngày mai. Dùng ngay nhé!", first)
	} else {
		body = fmt.Sprintf("%q và %d món khác sẽ hết hạn vào ngày mai.", first, len(items)-1)
	}

	return push.Notification{
		Title: notificationTitle,
		Body:  body,
		Data: map[string]string{
			"action_id":  ActionFindRecipe,
			"ingredient": first,
		},
	}
}
