package missions

import (
	"regexp"
	"strconv"
	"strings"
)

// represents one extracted mission block
type Mission struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// block tags look like <MISSION_1>...</MISSION_1>; RE2 has no
// backreferences so the closing number is matched loosely and the
// opening tag's number wins
var missionBlockRegex = regexp.MustCompile(`(?s)<MISSION_(\d+)>(.*?)</MISSION_\d+>`)

var (
	titleLineRegex      = regexp.MustCompile(`(?m)^\s*Title:\s*(.*)$`)
	descriptionTagRegex = regexp.MustCompile(`(?s)Description:\s*(.*)$`)
)

// Parse extracts tagged mission blocks from free text, keyed by
// mission number. Text without any well-formed tags yields an empty
// map; a block without Title:/Description: sub-fields falls back to
// the whole block as content.
func Parse(text string) map[int]Mission {
	missions := make(map[int]Mission)

	for _, match := range missionBlockRegex.FindAllStringSubmatch(text, -1) {
		number, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}

		missions[number] = parseBlock(match[2])
	}

	return missions
}

func parseBlock(block string) Mission {
	block = strings.TrimSpace(block)

	titleMatch := titleLineRegex.FindStringSubmatch(block)
	descMatch := descriptionTagRegex.FindStringSubmatch(block)

	// partial tagging: treat the whole block as content
	if titleMatch == nil && descMatch == nil {
		return Mission{Content: block}
	}

	var mission Mission

	if titleMatch != nil {
		mission.Title = strings.TrimSpace(titleMatch[1])
	}

	if descMatch != nil {
		mission.Content = strings.TrimSpace(descMatch[1])
	} else {
		// title only: content is everything after the title line
		idx := strings.Index(block, titleMatch[0])
		mission.Content = strings.TrimSpace(block[idx+len(titleMatch[0]):])
	}

	return mission
}
