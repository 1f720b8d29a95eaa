package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/mudgalz/foodie-be/internal/domain"
	"github.com/mudgalz/foodie-be/internal/imagestore"
)

// parseRestaurantForm reads the multipart create/update payload: scalar
// fields as form values, cuisines and menuItems as JSON-encoded fields, and
// an optional imageFile part.
func parseRestaurantForm(r *http.Request) (*domain.Restaurant, []byte, string, error) {
	if err := r.ParseMultipartForm(imagestore.MaxImageBytes); err != nil {
		return nil, nil, "", errors.New("invalid multipart payload")
	}

	name := r.FormValue("restaurantName")
	if name == "" {
		return nil, nil, "", errors.New("restaurantName is required")
	}

	deliveryPrice, err := strconv.ParseInt(r.FormValue("deliveryPrice"), 10, 64)
	if err != nil || deliveryPrice < 0 {
		return nil, nil, "", errors.New("deliveryPrice must be a non-negative integer in minor units")
	}
	estimatedDeliveryTime, err := strconv.Atoi(r.FormValue("estimatedDeliveryTime"))
	if err != nil || estimatedDeliveryTime < 0 {
		return nil, nil, "", errors.New("estimatedDeliveryTime must be a non-negative integer")
	}

	var cuisines []string
	if raw := r.FormValue("cuisines"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &cuisines); err != nil {
			return nil, nil, "", errors.New("cuisines must be a JSON array of strings")
		}
	}

	var menuItems []domain.MenuItem
	if raw := r.FormValue("menuItems"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &menuItems); err != nil {
			return nil, nil, "", errors.New("menuItems must be a JSON array")
		}
	}
	for _, item := range menuItems {
		if item.Name == "" || item.Price < 0 {
			return nil, nil, "", errors.New("menu items need a name and a non-negative price")
		}
	}

	rest := &domain.Restaurant{
		Name:                  name,
		City:                  r.FormValue("city"),
		Country:               r.FormValue("country"),
		DeliveryPrice:         deliveryPrice,
		EstimatedDeliveryTime: estimatedDeliveryTime,
		Cuisines:              cuisines,
		MenuItems:             menuItems,
	}

	image, imageType, err := readImageFile(r)
	if err != nil {
		return nil, nil, "", err
	}
	return rest, image, imageType, nil
}

func readImageFile(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("imageFile")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", errors.New("error retrieving image file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, imagestore.MaxImageBytes+1))
	if err != nil {
		return nil, "", errors.New("error reading image file")
	}
	if len(data) > imagestore.MaxImageBytes {
		return nil, "", errors.New("image file too large")
	}
	return data, header.Header.Get("Content-Type"), nil
}
