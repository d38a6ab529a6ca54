package query

import (
	"math"
	"sort"
	"strings"

	"github.com/wasilah/csr/internal/model"
)

// LocationSpec 地理筛选条件
type LocationSpec struct {
	City     string  `json:"city" form:"city"`
	RadiusKm float64 `json:"radius_km" form:"radius_km"`
}

// Spec 项目列表筛选条件，各维度之间取交集
type Spec struct {
	// Text 针对标题、简介、城市做不区分大小写的子串匹配
	Text string `json:"text" form:"q"`
	// Statuses 状态集合，任一命中即可，空集合表示不过滤
	Statuses []model.ProjectStatus `json:"statuses" form:"status"`
	// SDGs SDG集合，项目包含其中任意一个即命中，空集合表示不过滤
	SDGs []int `json:"sdgs" form:"sdg"`
	// Location 城市加半径，城市不在坐标表内的项目在此筛选下被排除
	Location *LocationSpec `json:"location,omitempty"`
	// Sort 可选排序键，目前仅支持 created_at（倒序），为空保持原顺序
	Sort string `json:"sort" form:"sort"`
}

// IsZero 是否为空条件
func (s Spec) IsZero() bool {
	return s.Text == "" && len(s.Statuses) == 0 && len(s.SDGs) == 0 &&
		s.Location == nil && s.Sort == ""
}

// Filter 按条件筛选项目列表，空条件时原样返回
func Filter(projects []model.Project, spec Spec) []model.Project {
	if spec.IsZero() {
		return projects
	}

	var origin model.Coordinate
	var originOK bool
	if spec.Location != nil {
		origin, originOK = model.LookupCity(spec.Location.City)
	}

	result := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if !matchText(&p, spec.Text) {
			continue
		}
		if !matchStatus(&p, spec.Statuses) {
			continue
		}
		if !matchSDG(&p, spec.SDGs) {
			continue
		}
		if spec.Location != nil && !matchLocation(&p, origin, originOK, spec.Location.RadiusKm) {
			continue
		}
		result = append(result, p)
	}

	if spec.Sort == "created_at" {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}

	return result
}

func matchText(p *model.Project, text string) bool {
	if text == "" {
		return true
	}
	q := strings.ToLower(text)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.ShortDescription), q) ||
		strings.Contains(strings.ToLower(p.Location.City), q)
}

func matchStatus(p *model.Project, statuses []model.ProjectStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if p.Status == s {
			return true
		}
	}
	return false
}

func matchSDG(p *model.Project, sdgs []int) bool {
	if len(sdgs) == 0 {
		return true
	}
	for _, id := range sdgs {
		if p.HasSDG(id) {
			return true
		}
	}
	return false
}

func matchLocation(p *model.Project, origin model.Coordinate, originOK bool, radiusKm float64) bool {
	// 查询城市本身不在坐标表内时，地理筛选不命中任何项目
	if !originOK {
		return false
	}
	target, ok := model.LookupCity(p.Location.City)
	if !ok {
		return false
	}
	return HaversineKm(origin, target) <= radiusKm
}

const earthRadiusKm = 6371.0

// HaversineKm 两点间大圆距离（公里）
func HaversineKm(a, b model.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
