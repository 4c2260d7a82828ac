package csvreader

// Column is the canonical name of a talk spreadsheet column.
type Column string

// Canonical columns, in the order the spreadsheet template lists them.
const (
	ColID          Column = "Talk ID"
	ColMeeting     Column = "Meeting"
	ColMeetingLink Column = "Meeting Link"
	ColLocation    Column = "Location"
	ColStartDate   Column = "Start Date"
	ColEndDate     Column = "End Date"
	ColTitle       Column = "Title"
	ColTalkDate    Column = "Talk Date"
	ColStartTime   Column = "Start Time"
	ColTimeZone    Column = "Time Zone"
	ColDuration    Column = "Duration"
	ColSession     Column = "Session"
	ColCity        Column = "City"
	ColCountry     Column = "Country"
	ColAbstract    Column = "Abstract"
	ColSlides      Column = "Slides"
	ColRecording   Column = "Recording"
	ColStatus      Column = "Status"
	ColTags        Column = "Tags"
	ColTalkType    Column = "Talk Type"
	ColVisibility  Column = "Visibility"
)

// Columns lists every canonical column.
var Columns = []Column{
	ColID, ColMeeting, ColMeetingLink, ColLocation, ColStartDate, ColEndDate,
	ColTitle, ColTalkDate, ColStartTime, ColTimeZone, ColDuration, ColSession,
	ColCity, ColCountry, ColAbstract, ColSlides, ColRecording, ColStatus,
	ColTags, ColTalkType, ColVisibility,
}

// RequiredColumns must be present in the header row.
var RequiredColumns = []Column{ColID, ColTitle, ColTalkDate, ColStatus, ColVisibility}

// aliases lists accepted header spellings per column, canonical first.
// Spreadsheets in the wild carry a few historical variants.
var aliases = map[Column][]string{
	ColID:          {"Talk ID", "TalkID"},
	ColMeeting:     {"Meeting", "Meeting/Venue"},
	ColMeetingLink: {"Meeting Link", "MeetingLink"},
	ColLocation:    {"Location"},
	ColStartDate:   {"Start Date", "StartDate"},
	ColEndDate:     {"End Date", "EndDate"},
	ColTitle:       {"Title"},
	ColTalkDate:    {"Talk Date", "TalkDate", "Date"},
	ColStartTime:   {"Start Time", "StartTime"},
	ColTimeZone:    {"Time Zone", "Timezone", "TZ"},
	ColDuration:    {"Duration"},
	ColSession:     {"Session"},
	ColCity:        {"City"},
	ColCountry:     {"Country"},
	ColAbstract:    {"Abstract", "Abstratct"},
	ColSlides:      {"Slides"},
	ColRecording:   {"Recording"},
	ColStatus:      {"Status"},
	ColTags:        {"Tags"},
	ColTalkType:    {"Talk Type", "TalkType", "Type"},
	ColVisibility:  {"Visibility"},
}

// resolveColumns maps each canonical column to the index of the first header
// cell spelling it. Columns absent from the header are left out.
func resolveColumns(header []string) map[Column]int {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := byName[h]; !dup {
			byName[h] = i
		}
	}

	out := make(map[Column]int, len(Columns))
	for _, col := range Columns {
		for _, name := range aliases[col] {
			if idx, ok := byName[name]; ok {
				out[col] = idx
				break
			}
		}
	}
	return out
}
