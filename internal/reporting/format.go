package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marius851000/spritecollab-srv/internal/datafiles"
)

const previewLimit = 300

func discordBody(rep datafiles.Report) string {
	if len(rep.AnimErrors) > 0 {
		lines := make([]string, len(rep.AnimErrors))
		for i, ae := range rep.AnimErrors {
			lines[i] = ae.String()
		}
		return fmt.Sprintf(
			"*%s*\n\n**Description**:\nFailed reading one or more AnimData.xml files: ```\n%s\n```",
			updateInfo, strings.Join(lines, "\n"),
		)
	}
	fname := filepath.Base(rep.Path)
	return fmt.Sprintf(
		"*%s*\n\n**Description**:\nFailed reading %s: %v%s",
		updateInfo, fname, rep.Err, linePreview(rep.Path, rep.Line()),
	)
}

// linePreview quotes the offending line of the broken file, when the error
// knows which line that is.
func linePreview(path string, lineN int) string {
	if lineN == 0 {
		return ""
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	lines := strings.Split(string(content), "\n")
	if lineN > len(lines) {
		return ""
	}
	return fmt.Sprintf("\nLine %d:\n```\n%s\n```", lineN, truncateEllipse(lines[lineN-1], previewLimit))
}

func truncateEllipse(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
