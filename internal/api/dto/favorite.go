package dto

type AddFavoriteRequest struct {
	XID  string   `json:"xid" validate:"required,max=100"`
	Name string   `json:"name" validate:"required,max=255"`
	Lat  *float64 `json:"lat" validate:"required,latitude"`
	Lon  *float64 `json:"lon" validate:"required,longitude"`
}

type AddFavoriteResponse struct {
	Success    bool  `json:"success"`
	FavoriteID int64 `json:"favorite_id"`
}

type FavoriteResponse struct {
	ID        int64   `json:"id"`
	XID       string  `json:"xid"`
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	CreatedAt string  `json:"created_at"`
}

type ListFavoritesResponse struct {
	Success   bool               `json:"success"`
	Favorites []FavoriteResponse `json:"favorites"`
}
