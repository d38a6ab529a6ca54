package model

import "strings"

// SDG 联合国可持续发展目标
type SDG struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SDGCatalog 固定的17项SDG目录
var SDGCatalog = []SDG{
	{1, "No Poverty"},
	{2, "Zero Hunger"},
	{3, "Good Health and Well-being"},
	{4, "Quality Education"},
	{5, "Gender Equality"},
	{6, "Clean Water and Sanitation"},
	{7, "Affordable and Clean Energy"},
	{8, "Decent Work and Economic Growth"},
	{9, "Industry, Innovation and Infrastructure"},
	{10, "Reduced Inequalities"},
	{11, "Sustainable Cities and Communities"},
	{12, "Responsible Consumption and Production"},
	{13, "Climate Action"},
	{14, "Life Below Water"},
	{15, "Life on Land"},
	{16, "Peace, Justice and Strong Institutions"},
	{17, "Partnerships for the Goals"},
}

// ValidSDG SDG编号是否在目录范围内
func ValidSDG(id int) bool {
	return id >= 1 && id <= len(SDGCatalog)
}

// Coordinate 城市经纬度
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// cityCoordinates 巴基斯坦主要城市坐标表，地理筛选用
var cityCoordinates = map[string]Coordinate{
	"karachi":    {24.8607, 67.0011},
	"lahore":     {31.5204, 74.3587},
	"islamabad":  {33.6844, 73.0479},
	"rawalpindi": {33.5651, 73.0169},
	"faisalabad": {31.4504, 73.1350},
	"multan":     {30.1575, 71.5249},
	"peshawar":   {34.0151, 71.5249},
	"quetta":     {30.1798, 66.9750},
	"hyderabad":  {25.3960, 68.3578},
	"sialkot":    {32.4945, 74.5229},
	"gujranwala": {32.1877, 74.1945},
	"sukkur":     {27.7052, 68.8574},
	"bahawalpur": {29.3956, 71.6836},
	"sargodha":   {32.0836, 72.6711},
	"abbottabad": {34.1688, 73.2215},
}

// LookupCity 按城市名查坐标，不区分大小写
func LookupCity(name string) (Coordinate, bool) {
	c, ok := cityCoordinates[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
