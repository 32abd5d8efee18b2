package mediapipe

// LandmarksRequest for POST /landmarks
type LandmarksRequest struct {
	Img             string `json:"img"` // base64 encoded image
	MaxFaces        int    `json:"max_faces"`
	RefineLandmarks bool   `json:"refine_landmarks"`
}

// LandmarksResponse from POST /landmarks
type LandmarksResponse struct {
	Faces []FaceMesh `json:"faces"`
}

// FaceMesh is one detected face with the 468 (or 478 when refined) mesh points
type FaceMesh struct {
	Score     float64     `json:"score"`
	Landmarks []MeshPoint `json:"landmarks"`
}

// MeshPoint has x and y normalised to [0,1] by image width and height
type MeshPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}
