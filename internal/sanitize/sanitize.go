package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// UserContent strips markup that user-generated content is not allowed to
// carry (post titles and bodies, comment bodies).
func UserContent(input string) string {
	return policy.Sanitize(input)
}
