package flyer

// Shop is a retailer discovered within a category's dropdown menu
type Shop struct {
	// Path is the shop's partial URL segment, e.g. "/lidl/"
	Path string
	// Name is the visible text of the shop link
	Name string
}

// FlyerRecord represents one parsed promotional flyer
type FlyerRecord struct {
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail"`
	ShopName   string `json:"shop_name"`
	ValidFrom  string `json:"valid_from"`
	ValidTo    string `json:"valid_to"`
	ParsedTime string `json:"parsed_time"`
}
