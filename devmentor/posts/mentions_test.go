package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMentions_Basic(t *testing.T) {
	usernames := ExtractMentions("hey @alice check this out")

	assert.Equal(t, []string{"alice"}, usernames)
}

func TestExtractMentions_Multiple(t *testing.T) {
	usernames := ExtractMentions("@alice and @bob should pair on this with @carol.dev")

	assert.Equal(t, []string{"alice", "bob", "carol.dev"}, usernames)
}

func TestExtractMentions_Deduplicates(t *testing.T) {
	usernames := ExtractMentions("@alice @bob @alice again")

	assert.Equal(t, []string{"alice", "bob"}, usernames)
}

func TestExtractMentions_IgnoresEmails(t *testing.T) {
	usernames := ExtractMentions("reach me at alice@example.com or ping @bob")

	assert.Equal(t, []string{"bob"}, usernames)
}

func TestExtractMentions_None(t *testing.T) {
	usernames := ExtractMentions("no mentions here, just text")

	assert.Empty(t, usernames)
}

func TestExtractMentions_StartOfContent(t *testing.T) {
	usernames := ExtractMentions("@alice leading mention")

	assert.Equal(t, []string{"alice"}, usernames)
}
