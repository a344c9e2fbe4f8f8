package anprdto

// DetectionOutput mirrors the camera vendor's acknowledgement contract.
// Success echoes plate validity as the strings "True" and "False".
type DetectionOutput struct {
	Success string `json:"Success"`
	Error   string `json:"Error"`
}

func Acknowledged(valid bool) DetectionOutput {
	if valid {
		return DetectionOutput{Success: "True"}
	}
	return DetectionOutput{Success: "False"}
}
