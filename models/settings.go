package models

type SiteSettings struct {
	Logo           string `json:"logo"`
	RestaurantName string `json:"restaurantName"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	MapLink        string `json:"mapLink"`
}

// UpdateSettingsRequest is a partial update; nil fields keep their value.
type UpdateSettingsRequest struct {
	Logo           *string `json:"logo"`
	RestaurantName *string `json:"restaurantName"`
	Address        *string `json:"address"`
	Phone          *string `json:"phone"`
	Email          *string `json:"email"`
	MapLink        *string `json:"mapLink"`
}

func (r UpdateSettingsRequest) ApplyTo(s SiteSettings) SiteSettings {
	if r.Logo != nil {
		s.Logo = *r.Logo
	}
	if r.RestaurantName != nil {
		s.RestaurantName = *r.RestaurantName
	}
	if r.Address != nil {
		s.Address = *r.Address
	}
	if r.Phone != nil {
		s.Phone = *r.Phone
	}
	if r.Email != nil {
		s.Email = *r.Email
	}
	if r.MapLink != nil {
		s.MapLink = *r.MapLink
	}
	return s
}
