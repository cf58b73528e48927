package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		panic(err)
	}
}

// the portal renders every date in IST regardless of where this process
// runs, so day boundaries computed from <time.Time>.Year()/Month()/Day()
// must be taken in that zone or caching and day-order math drift
func Now() time.Time {
	return time.Now().In(Location)
}
