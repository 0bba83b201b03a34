package services

import "ride-compare-backend/internal/models"

// Estimates returns fare/ETA quotes for a pickup/dropoff pair. The data is a
// fixed table standing in for the Uber/Ola/Rapido provider APIs; a real
// deployment would fan out to them here.
func (s *RideService) Estimates(pickupLat, pickupLng, dropoffLat, dropoffLng string) []models.ProviderEstimates {
	return []models.ProviderEstimates{
		{
			Service: "uber",
			Estimates: []models.RideEstimate{
				{
					RideType:            "UberX",
					Capacity:            4,
					Fare:                "249",
					Currency:            "₹",
					EstimatedPickupTime: 12,
					EstimatedDuration:   18,
					Distance:            "7.2",
					DeepLink:            "uber://",
				},
				{
					RideType:            "UberXL",
					Capacity:            6,
					Fare:                "349",
					Currency:            "₹",
					EstimatedPickupTime: 15,
					EstimatedDuration:   18,
					Distance:            "7.2",
					DeepLink:            "uber://",
				},
			},
		},
		{
			Service: "ola",
			Estimates: []models.RideEstimate{
				{
					RideType:            "Ola Mini",
					Capacity:            4,
					Fare:                "279",
					Currency:            "₹",
					EstimatedPickupTime: 8,
					EstimatedDuration:   18,
					Distance:            "7.2",
					DeepLink:            "ola://",
				},
				{
					RideType:            "Ola Prime",
					Capacity:            4,
					Fare:                "369",
					Currency:            "₹",
					EstimatedPickupTime: 10,
					EstimatedDuration:   18,
					Distance:            "7.2",
					DeepLink:            "ola://",
				},
			},
		},
		{
			Service: "rapido",
			Estimates: []models.RideEstimate{
				{
					RideType:            "Rapido Bike",
					Capacity:            1,
					Fare:                "149",
					Currency:            "₹",
					EstimatedPickupTime: 5,
					EstimatedDuration:   12,
					Distance:            "7.2",
					DeepLink:            "rapido://",
				},
			},
		},
	}
}
