package model

// Clash is a pair of meeting slots of two different courses overlapping on
// the same day.
type Clash struct {
	Course1ID string `json:"course1Id"`
	Course2ID string `json:"course2Id"`
	Day       string `json:"day"`
	Slot1     Slot   `json:"slot1"`
	Slot2     Slot   `json:"slot2"`
}

type ClashCSVRow struct {
	Course1ID string `csv:"course1_id"`
	Course2ID string `csv:"course2_id"`
	Day       string `csv:"day"`
	Time1     string `csv:"time1"`
	Location1 string `csv:"location1"`
	Time2     string `csv:"time2"`
	Location2 string `csv:"location2"`
}

// TimetableRow is one printable line of a weekly timetable.
type TimetableRow struct {
	Day       string
	TimeRange string
	CourseID  string
	Location  string
	Clashing  bool
}
