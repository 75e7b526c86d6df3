// Package stores serves the static list of physical store locations.
package stores

import "time"

// Store is one physical location.
type Store struct {
	ID        int64    `json:"id"`
	Slug      string   `json:"slug"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email,omitempty"`
	Status    string   `json:"status"` // "Đang hoạt động" | "Tạm đóng cửa"
	MapURL    string   `json:"mapUrl,omitempty"`
	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`
	Services  []string `json:"services,omitempty"`
}

const statusClosed = "Tạm đóng cửa"

// Opening hours, local time.
const (
	weekdayOpenHour  = 8
	weekdayCloseHour = 18
	weekdayCloseMin  = 30
	sundayCloseHour  = 17
)

var all = []Store{
	{
		ID:      1,
		Slug:    "kim-phu-quy-dong-nai",
		Name:    "Kim Phú Quý Đồng Nai",
		Address: "107-109 Phạm Văn Thuận, P. Tân Tiến, Biên Hòa, Đồng Nai",
		Phone:   "0933 244 567",
		Email:   "kimphuquydongnai@gmail.com",
		Status:  "Đang hoạt động",
		MapURL:  "https://maps.google.com/?q=Kim+Phu+Quy+Dong+Nai",
		Services: []string{
			"Mua bán bạc miếng, bạc thỏi",
			"Trang sức bạc",
			"Thu mua lại sản phẩm",
		},
	},
}

// All returns every store location.
func All() []Store {
	out := make([]Store, len(all))
	copy(out, all)
	return out
}

// Active returns stores currently operating.
func Active() []Store {
	var out []Store
	for _, s := range all {
		if s.Status != statusClosed {
			out = append(out, s)
		}
	}
	return out
}

// BySlug looks a store up by its URL slug.
func BySlug(slug string) (Store, bool) {
	for _, s := range all {
		if s.Slug == slug {
			return s, true
		}
	}
	return Store{}, false
}

// IsOpen reports whether the store is open for walk-ins at the given local
// time: Monday to Saturday 8:00-18:30, Sunday 8:00-17:00. A store marked
// closed is never open.
func IsOpen(s Store, at time.Time) bool {
	if s.Status == statusClosed {
		return false
	}

	minutes := at.Hour()*60 + at.Minute()
	open := weekdayOpenHour * 60

	var close int
	if at.Weekday() == time.Sunday {
		close = sundayCloseHour * 60
	} else {
		close = weekdayCloseHour*60 + weekdayCloseMin
	}

	return minutes >= open && minutes < close
}
