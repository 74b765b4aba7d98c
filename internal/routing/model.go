package routing

import "time"

// RouteLog is the summary record forwarded after a route is computed and
// displayed. Waypoint addresses and the flattened path are stored as
// JSON columns.
type RouteLog struct {
	ID          uint          `gorm:"primaryKey;column:id" json:"id"`
	Origin      string        `gorm:"type:varchar(255);column:origin;not null" json:"origin"`
	Destination string        `gorm:"type:varchar(255);column:destination;not null" json:"destination"`
	Waypoints   []string      `gorm:"serializer:json;type:jsonb;column:waypoints" json:"waypoints"`
	Distance    string        `gorm:"type:varchar(32);column:distance;not null" json:"distance"`
	Duration    string        `gorm:"type:varchar(32);column:duration;not null" json:"duration"`
	Polyline    string        `gorm:"type:text;column:polyline" json:"polyline"`
	Path        []Coordinates `gorm:"serializer:json;type:jsonb;column:path" json:"path"`
	CreatedAt   time.Time     `gorm:"type:timestamptz;column:created_at;not null" json:"createdAt"`
}

func (rl *RouteLog) TableName() string {
	return "route_logs"
}
