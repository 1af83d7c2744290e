package activity

import "github.com/neighborfit/neighborfit/internal/geo"

// SeedActivities returns the demo activity set for the Delhi launch area.
// Records are returned in display order; the store preserves it.
func SeedActivities() []*Activity {
	return []*Activity{
		{
			ID:          "1",
			Title:       "Sunrise Yoga at India Gate",
			Type:        "Yoga",
			Location:    "India Gate",
			Address:     "Rajpath, India Gate, New Delhi, Delhi 110001",
			Coordinates: geo.Point{Lat: 28.6129, Lng: 77.2295},
			Time:        "6:00 AM - 7:30 AM",
			Date:        "Tomorrow",
			Participants: 12,
			Capacity:     25,
			Difficulty:   DifficultyBeginner,
			Category:     CategoryOutdoor,
			Organizer:    Organizer{Name: "Priya Sharma", Rating: 4.8, Verified: true},
			Description: "Start your day with peaceful yoga session at the iconic India Gate. " +
				"Watch the sunrise while practicing mindful breathing and gentle stretches.",
			Tags:            []string{"Outdoor", "Mindfulness", "Flexibility", "Sunrise"},
			Price:           0,
			IsRecurring:     true,
			Equipment:       []string{"Yoga Mat", "Water Bottle"},
			AgeGroup:        "All Ages",
			DurationMinutes: 90,
			IsJoined:        true,
		},
		{
			ID:          "2",
			Title:       "HIIT Bootcamp at Lodhi Gardens",
			Type:        "HIIT",
			Location:    "Lodhi Gardens",
			Address:     "Lodhi Road, New Delhi, Delhi 110003",
			Coordinates: geo.Point{Lat: 28.5918, Lng: 77.2219},
			Time:        "6:30 PM - 7:30 PM",
			Date:        "Today",
			Participants: 18,
			Capacity:     30,
			Difficulty:   DifficultyIntermediate,
			Category:     CategoryOutdoor,
			Organizer:    Organizer{Name: "Rahul Kumar", Rating: 4.9, Verified: true},
			Description: "High-intensity interval training in the beautiful Lodhi Gardens. " +
				"Build strength, endurance, and burn calories with our certified trainer.",
			Tags:            []string{"Outdoor", "Strength", "Cardio", "Fat Burn"},
			Price:           300,
			Equipment:       []string{"Resistance Bands", "Water Bottle", "Towel"},
			AgeGroup:        "18-45",
			DurationMinutes: 60,
		},
		{
			ID:          "3",
			Title:       "Cycling Tour: CP to Connaught Place",
			Type:        "Cycling",
			Location:    "Connaught Place",
			Address:     "Connaught Place, New Delhi, Delhi 110001",
			Coordinates: geo.Point{Lat: 28.6315, Lng: 77.2167},
			Time:        "7:00 AM - 9:00 AM",
			Date:        "This Weekend",
			Participants: 22,
			Capacity:     40,
			Difficulty:   DifficultyIntermediate,
			Category:     CategoryOutdoor,
			Organizer:    Organizer{Name: "Amit Singh", Rating: 4.7, Verified: true},
			Description: "Explore Delhi's heritage on wheels! Scenic cycling route through " +
				"historic areas with stops at famous landmarks. Bikes and helmets provided.",
			Tags:            []string{"Outdoor", "Cardio", "Social", "Heritage"},
			Price:           250,
			IsRecurring:     true,
			Equipment:       []string{"Helmet", "Cycling Gloves", "Water Bottle"},
			AgeGroup:        "16-60",
			DurationMinutes: 120,
			IsJoined:        true,
		},
		{
			ID:          "4",
			Title:       "Swimming Training at Siri Fort",
			Type:        "Swimming",
			Location:    "Siri Fort Sports Complex",
			Address:     "Siri Fort Rd, Siri Fort, New Delhi, Delhi 110049",
			Coordinates: geo.Point{Lat: 28.5355, Lng: 77.2167},
			Time:        "5:30 AM - 6:30 AM",
			Date:        "Daily",
			Participants: 15,
			Capacity:     25,
			Difficulty:   DifficultyAdvanced,
			Category:     CategoryWater,
			Organizer:    Organizer{Name: "Neha Gupta", Rating: 4.9, Verified: true},
			Description: "Professional swimming training with certified instructors. Focus on " +
				"technique improvement and endurance building in Olympic-size pool.",
			Tags:            []string{"Indoor", "Technique", "Endurance", "Professional"},
			Price:           500,
			IsRecurring:     true,
			Equipment:       []string{"Swimming Goggles", "Swim Cap", "Towel"},
			AgeGroup:        "18-50",
			DurationMinutes: 60,
		},
		{
			ID:          "5",
			Title:       "Rock Climbing at Adventure Island",
			Type:        "Rock Climbing",
			Location:    "Adventure Island",
			Address:     "Rithala, Sector 10, Rohini, Delhi 110085",
			Coordinates: geo.Point{Lat: 28.7041, Lng: 77.1025},
			Time:        "4:00 PM - 6:00 PM",
			Date:        "This Weekend",
			Participants: 8,
			Capacity:     15,
			Difficulty:   DifficultyIntermediate,
			Category:     CategoryIndoor,
			Organizer:    Organizer{Name: "Vikram Yadav", Rating: 4.6, Verified: true},
			Description: "Challenge yourself with indoor rock climbing! Perfect for building " +
				"upper body strength and mental focus. All safety equipment provided.",
			Tags:            []string{"Indoor", "Strength", "Adventure", "Mental Focus"},
			Price:           400,
			Equipment:       []string{"Climbing Shoes", "Harness", "Chalk Bag"},
			AgeGroup:        "16-45",
			DurationMinutes: 120,
			IsJoined:        true,
		},
		{
			ID:          "6",
			Title:       "Zumba Dance Fitness",
			Type:        "Dance",
			Location:    "Select City Walk Mall",
			Address:     "A-3, District Centre, Saket, New Delhi, Delhi 110017",
			Coordinates: geo.Point{Lat: 28.5245, Lng: 77.2063},
			Time:        "7:00 PM - 8:00 PM",
			Date:        "Every Tuesday & Thursday",
			Participants: 25,
			Capacity:     35,
			Difficulty:   DifficultyBeginner,
			Category:     CategoryIndoor,
			Organizer:    Organizer{Name: "Maria Rodriguez", Rating: 4.8, Verified: true},
			Description: "High-energy Zumba class combining Latin rhythms with easy-to-follow " +
				"moves. Burn calories while having fun dancing!",
			Tags:            []string{"Indoor", "Dance", "Cardio", "Fun"},
			Price:           200,
			IsRecurring:     true,
			Equipment:       []string{"Comfortable Shoes", "Water Bottle", "Towel"},
			AgeGroup:        "All Ages",
			DurationMinutes: 60,
		},
		{
			ID:          "7",
			Title:       "Morning Run at Rajpath",
			Type:        "Running",
			Location:    "Rajpath",
			Address:     "Rajpath, New Delhi, Delhi 110001",
			Coordinates: geo.Point{Lat: 28.6118, Lng: 77.2273},
			Time:        "6:00 AM - 7:00 AM",
			Date:        "Daily",
			Participants: 35,
			Capacity:     50,
			Difficulty:   DifficultyBeginner,
			Category:     CategoryOutdoor,
			Organizer:    Organizer{Name: "You", Rating: 4.5, Verified: true},
			Description: "Join our daily morning run group along the scenic Rajpath. Perfect " +
				"for beginners and experienced runners alike. Free group activity!",
			Tags:            []string{"Outdoor", "Cardio", "Social", "Free"},
			Price:           0,
			IsRecurring:     true,
			Equipment:       []string{"Running Shoes", "Water Bottle"},
			AgeGroup:        "All Ages",
			DurationMinutes: 60,
			IsHosted:        true,
		},
		{
			ID:          "8",
			Title:       "Martial Arts Training",
			Type:        "Martial Arts",
			Location:    "Jawaharlal Nehru Stadium",
			Address:     "Lodhi Road, New Delhi, Delhi 110003",
			Coordinates: geo.Point{Lat: 28.5833, Lng: 77.2337},
			Time:        "5:00 PM - 6:30 PM",
			Date:        "Monday, Wednesday, Friday",
			Participants: 12,
			Capacity:     20,
			Difficulty:   DifficultyIntermediate,
			Category:     CategoryIndoor,
			Organizer:    Organizer{Name: "Sensei Takeshi", Rating: 4.9, Verified: true},
			Description: "Learn traditional martial arts techniques focusing on discipline, " +
				"self-defense, and physical fitness. Suitable for intermediate level practitioners.",
			Tags:            []string{"Indoor", "Self Defense", "Discipline", "Technique"},
			Price:           600,
			IsRecurring:     true,
			Equipment:       []string{"Martial Arts Uniform", "Protective Gear"},
			AgeGroup:        "16-50",
			DurationMinutes: 90,
		},
	}
}
