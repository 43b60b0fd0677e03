// Package cleanup provides ascii reporter
package cleanup

import (
	"fmt"
	"strings"
	"time"

	"github.com/DainoStore/dainostore-go/internal/infrastructure/caching/interfaces"
)

const (
	cyan        = "\033[38;2;86;182;194m"  // One Dark Cyan: #56B6C2
	cyanBright  = "\033[38;2;97;228;240m"  // Brighter Cyan: #61E4F0
	dimCyan     = "\033[38;2;47;91;102m"   // Dim Cyan: #2F5B66
	grey        = "\033[38;2;110;118;129m" // Brighter Grey: #6E7681
	dimGrey     = "\033[38;2;75;82;99m"    // Darker Grey: #4B5263
	success     = "\033[38;2;62;130;144m"  // Dim Cyan: #3E8290
	warning     = "\033[38;2;229;192;123m" // One Dark Yellow: #E5C07B
	errorRed    = "\033[38;2;224;108;117m" // One Dark Red: #E06C75
	white       = "\033[38;2;171;178;191m" // One Dark Foreground: #ABB2BF
	whiteBright = "\033[38;2;220;225;230m" // Brighter White
	purple      = "\033[38;2;198;120;221m" // One Dark Purple: #C678DD
	dimPurple   = "\033[38;2;142;87;158m"  // Dim Purple: #8E579E
	reset       = "\033[0m"
	bold        = "\033[1m"
)

type Reporter struct {
	cache interfaces.Cache
}

func NewReporter(cache interfaces.Cache) *Reporter {
	return &Reporter{cache: cache}
}

func (r *Reporter) LogHeader(title string) {
	fmt.Printf("%s%s✓ %s %s\n", bold, cyan, strings.ToUpper(title), reset)
}

func (r *Reporter) LogSubHeader(text string) {
	fmt.Printf("%s%s░▒▓ %s %s\n", bold, dimCyan, text, reset)
}

func (r *Reporter) LogStepSuccess(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s⚡ %s%s...%s\n", dimGrey, grey, formattedMsg, reset)
}

func (r *Reporter) LogStage(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s%s✦ %s%s%s\n", success, bold, grey, formattedMsg, reset)
}

func (r *Reporter) LogSuccess(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s%s✦ %s%s%s\n", success, bold, white, formattedMsg, reset)
}

func (r *Reporter) LogError(message string, err error) {
	fmt.Printf("%s%s✖ ERROR: %s%s: %v%s\n", bold, errorRed, grey, message, err, reset)
}

func (r *Reporter) LogWarning(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s%s⚠ WARNING: %s%s%s\n", bold, warning, grey, formattedMsg, reset)
}

func (r *Reporter) LogInfo(message string, args ...any) {
	formattedMsg := fmt.Sprintf(message, args...)
	fmt.Printf("%s▶ %s%s%s\n", dimGrey, grey, formattedMsg, reset)
}

func (r *Reporter) GenerateStoreReport(storeID string) string {
	var report strings.Builder
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 MST")

	// Store header with bright white name
	report.WriteString(fmt.Sprintf("%s%s▓ %s | Store: %s%s %s\n", bold, dimCyan, timestamp, whiteBright, storeID, reset))

	// Status line for settings and published layouts
	var statusLine strings.Builder
	if _, exists := r.cache.GetSettings(storeID); exists {
		statusLine.WriteString(fmt.Sprintf("%s✦ %sSettings: %sLOADED%s",
			success, grey, cyanBright, reset))
	} else {
		statusLine.WriteString(fmt.Sprintf("%s✖ %sSettings: %sNOT LOADED%s",
			errorRed, grey, errorRed, reset))
	}

	statusLine.WriteString("  ")

	if _, exists := r.cache.GetDefaultLanguage(storeID); exists {
		statusLine.WriteString(fmt.Sprintf("%s✦ %sLanguages: %sREADY%s",
			success, grey, white, reset))
	} else {
		statusLine.WriteString(fmt.Sprintf("%s○ %sLanguages: %sPRIMED%s",
			dimGrey, grey, cyan, reset))
	}
	report.WriteString(statusLine.String() + "\n")

	// Cached entities line (lowercase labels)
	var countsLine strings.Builder
	countsLine.WriteString(fmt.Sprintf("%s✦ cached entities:%s", cyanBright, reset))

	entityTypes := []struct {
		name   string
		getter func(string) ([]string, bool)
	}{
		{"products", r.cache.GetAllProductIDs},
		{"categories", r.cache.GetAllCategoryIDs},
		{"attributes", r.cache.GetAllAttributeIDs},
		{"coupons", r.cache.GetAllCouponIDs},
		{"layouts", r.cache.GetAllLayoutIDs},
		{"ab-tests", r.cache.GetRunningAbTestIDs},
	}

	for _, et := range entityTypes {
		countsLine.WriteString(" ")
		if ids, exists := et.getter(storeID); exists && len(ids) > 0 {
			countsLine.WriteString(fmt.Sprintf("%s%s:%s%d", dimCyan, et.name, cyan, len(ids)))
		} else {
			countsLine.WriteString(fmt.Sprintf("%s%s:%s--", dimGrey, et.name, dimGrey))
		}
	}
	report.WriteString(countsLine.String() + "\n")

	// Activity line (lowercase labels)
	var activityLine strings.Builder
	activityLine.WriteString(fmt.Sprintf("%s✦ activity:%s", purple, reset))

	sessionIDs := r.cache.GetAllSessionIDs(storeID)
	visitorIDs := r.cache.GetAllVisitorIDs(storeID)
	fragmentKeys := r.cache.GetAllFragmentKeys(storeID)

	formatActivityItem := func(label string, count int) string {
		if count > 0 {
			return fmt.Sprintf(" %s%s:%s%d", dimPurple, label, white, count)
		}
		return fmt.Sprintf(" %s%s:%s--", dimGrey, label, dimGrey)
	}

	activityLine.WriteString(formatActivityItem("sessions", len(sessionIDs)))
	activityLine.WriteString(formatActivityItem("visitors", len(visitorIDs)))
	activityLine.WriteString(formatActivityItem("fragments", len(fragmentKeys)))

	report.WriteString(activityLine.String() + "\n")

	return report.String()
}
