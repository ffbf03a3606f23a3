package botdefense

import (
	"fmt"
	"math/rand"

	"github.com/gin-gonic/gin"
)

// serves fake gallery data to bots
func ServePoisonedJSON(c *gin.Context) {
	data := generateFakeImages(rand.Intn(15) + 5) //nolint:gosec
	c.JSON(200, gin.H{
		"status": "success",
		"data":   data,
	})
}

// fake generated-image structure
type fakeImage struct {
	ID        string  `json:"id"`
	ImageURL  string  `json:"imageUrl"`
	Prompt    string  `json:"prompt"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	CreatedAt string  `json:"createdAt"`
}

func generateFakeImages(count int) []fakeImage {
	images := make([]fakeImage, count)
	for i := range images {
		lat := rand.Float64()*180 - 90  //nolint:gosec
		lng := rand.Float64()*360 - 180 //nolint:gosec

		images[i] = fakeImage{
			ID:        randomID(),
			ImageURL:  fmt.Sprintf("https://cdn.example.invalid/photos/%s.jpg", randomID()),
			Prompt:    randomPrompt(),
			Address:   randomAddress(),
			Lat:       lat,
			Lng:       lng,
			CreatedAt: randomDate(),
		}
	}

	return images
}

var (
	promptMoods = []string{"golden hour", "misty morning", "neon night", "overcast afternoon", "sunset", "blue hour"}
	placeNames  = []string{"Old Harbor", "North Station", "Palm Square", "River Walk", "Sunset Pier", "Market Street"}
	cityNames   = []string{"Nowhere City", "Teststadt", "Villa Falsa", "Fauxville", "Null Island"}
)

func randomID() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		rand.Int31(),                //nolint:gosec
		rand.Int31()&0xffff,         //nolint:gosec
		rand.Int31()&0xffff,         //nolint:gosec
		rand.Int31()&0xffff,         //nolint:gosec
		rand.Int63()&0xffffffffffff) //nolint:gosec
}

func randomPrompt() string {
	mood := promptMoods[rand.Intn(len(promptMoods))] //nolint:gosec
	place := placeNames[rand.Intn(len(placeNames))]  //nolint:gosec

	return fmt.Sprintf("a travel photo at %s during %s", place, mood)
}

func randomAddress() string {
	place := placeNames[rand.Intn(len(placeNames))] //nolint:gosec
	city := cityNames[rand.Intn(len(cityNames))]    //nolint:gosec

	return fmt.Sprintf("%d %s, %s", rand.Intn(200)+1, place, city) //nolint:gosec
}

func randomDate() string {
	year := 2024 + rand.Intn(2)                                                                      //nolint:gosec
	month := 1 + rand.Intn(12)                                                                       //nolint:gosec
	day := 1 + rand.Intn(28)                                                                         //nolint:gosec
	return fmt.Sprintf("%d-%02d-%02dT%02d:%02d:00Z", year, month, day, rand.Intn(24), rand.Intn(60)) //nolint:gosec
}
