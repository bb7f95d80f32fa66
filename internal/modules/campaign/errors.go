package campaign

import "errors"

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrGreetingNotFound = errors.New("greeting message not found")
	ErrWrongStatus      = errors.New("campaign is not in a startable status")
	ErrSignalFailed     = errors.New("campaign webhook rejected the signal")
)
