package missions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleMission(t *testing.T) {
	text := `Here is your first task.

<MISSION_1>
Title: Build a REST endpoint
Description: Add a GET /health route that returns 200.
</MISSION_1>

Good luck!`

	missions := Parse(text)

	require.Len(t, missions, 1)
	assert.Equal(t, "Build a REST endpoint", missions[1].Title)
	assert.Equal(t, "Add a GET /health route that returns 200.", missions[1].Content)
}

func TestParse_MultipleMissions(t *testing.T) {
	text := `<MISSION_1>
Title: First
Description: Do the first thing.
</MISSION_1>
<MISSION_2>
Title: Second
Description: Do the second thing.
</MISSION_2>`

	missions := Parse(text)

	require.Len(t, missions, 2)
	assert.Equal(t, "First", missions[1].Title)
	assert.Equal(t, "Second", missions[2].Title)
	assert.Equal(t, "Do the second thing.", missions[2].Content)
}

func TestParse_NoTags(t *testing.T) {
	missions := Parse("just a normal mentor reply with no missions")

	assert.Empty(t, missions)
}

func TestParse_MissingSubfields(t *testing.T) {
	text := `<MISSION_3>
Refactor the config loader to fail fast on missing vars.
</MISSION_3>`

	missions := Parse(text)

	require.Len(t, missions, 1)
	assert.Empty(t, missions[3].Title)
	assert.Equal(t, "Refactor the config loader to fail fast on missing vars.", missions[3].Content)
}

func TestParse_TitleOnly(t *testing.T) {
	text := `<MISSION_1>
Title: Write tests
Cover the happy path and the timeout case.
</MISSION_1>`

	missions := Parse(text)

	require.Len(t, missions, 1)
	assert.Equal(t, "Write tests", missions[1].Title)
	assert.Equal(t, "Cover the happy path and the timeout case.", missions[1].Content)
}

func TestParse_UnclosedTagIgnored(t *testing.T) {
	text := `<MISSION_1>
Title: Dangling
Description: This block never closes.`

	missions := Parse(text)

	assert.Empty(t, missions)
}

func TestParse_MultilineDescription(t *testing.T) {
	text := `<MISSION_2>
Title: Ship it
Description: Step one.
Step two.
Step three.
</MISSION_2>`

	missions := Parse(text)

	require.Len(t, missions, 1)
	assert.Equal(t, "Step one.\nStep two.\nStep three.", missions[2].Content)
}
