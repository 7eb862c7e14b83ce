package models

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Messages         History     // Transcript pushed from core
	Notices          []string    // Program messages (welcome, hints)
	Image            *ImageAsset // Latest destination image, if any
	ImagePreview     string      // Rendered preview of Image, cached between frames
	Translation      string      // Translation of the latest assistant reply
	Status           string      // Status bar text
	Loading          bool        // Loading state from core
	LoadingDots      int         // Animation counter for loading dots
	Width            int         // Terminal width
	Height           int         // Terminal height
	ChatServiceReady bool        // Whether chat service is available
}
