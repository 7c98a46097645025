package model

// ChatUser is the user record mirrored to the external chat provider.
type ChatUser struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Image            string `json:"image,omitempty"`
	Bio              string `json:"bio,omitempty"`
	NativeLanguage   string `json:"nativeLanguage,omitempty"`
	LearningLanguage string `json:"learningLanguage,omitempty"`
	Location         string `json:"location,omitempty"`
}
