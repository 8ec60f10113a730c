package dto

type LocationQueryRequest struct {
	Query string `json:"query"`
}

type StopResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

type LocationsResponse struct {
	Depot *StopResponse  `json:"depot"`
	Stops []StopResponse `json:"stops"`
	Ready bool           `json:"ready"`
}

type AddStopResponse struct {
	Stop  StopResponse `json:"stop"`
	Added bool         `json:"added"`
}
