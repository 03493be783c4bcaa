package generate

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"github.com/locgroup/internal/profile"
)

// City is one cluster centre the generator places users in
type City struct {
	Name    string
	State   string
	Country string
	Weight  float64
}

// Cities are the clusters used when no other table is supplied
var Cities = []City{
	{Name: "San Francisco", State: "CA", Country: "USA", Weight: 1.2},
	{Name: "New York", State: "NY", Country: "USA", Weight: 1.5},
	{Name: "Austin", State: "TX", Country: "USA", Weight: 0.7},
	{Name: "Seattle", State: "WA", Country: "USA", Weight: 0.8},
	{Name: "Miami", State: "FL", Country: "USA", Weight: 0.6},
	{Name: "Chicago", State: "IL", Country: "USA", Weight: 0.9},
	{Name: "Denver", State: "CO", Country: "USA", Weight: 0.5},
	{Name: "Los Angeles", State: "CA", Country: "USA", Weight: 1.1},
	{Name: "London", State: "", Country: "UK", Weight: 0.4},
	{Name: "Toronto", State: "ON", Country: "Canada", Weight: 0.4},
}

var (
	firstNames = []string{
		"Alex", "Taylor", "Jordan", "Casey", "Riley", "Jamie", "Morgan", "Sam", "Chris", "Drew",
		"Pat", "Cameron", "Quinn", "Avery", "Skyler", "Blake", "Dakota", "Devin", "Emerson", "Elliot",
	}
	lastNames = []string{
		"Nguyen", "Patel", "Garcia", "Smith", "Johnson", "Brown", "Davis", "Miller", "Wilson", "Moore",
		"Taylor", "Anderson", "Thomas", "Jackson", "White", "Harris", "Martin", "Thompson", "Lee", "Perez",
	}
	interestsPool = []string{
		"hiking", "cooking", "reading", "traveling", "yoga", "gaming", "music", "movies", "fitness", "running",
		"photography", "dancing", "painting", "gardening", "cycling", "tech", "startups", "coffee", "board games", "crafts",
		"meditation", "languages", "history", "politics", "art", "volunteering", "camping", "climbing", "sailing", "tennis",
	}
	languages = []string{"en", "es", "fr", "de", "pt", "it"}
)

// fixtures are appended after the random users so matching can be checked by hand
var fixtures = []struct {
	username string
	city     string
	age      int
}{
	{username: "alice.sf", city: "San Francisco", age: 28},
	{username: "bob.sf", city: "San Francisco", age: 30},
	{username: "carol.ny", city: "New York", age: 27},
}

// Generator produces synthetic profiles. Output is reproducible for a seed.
type Generator struct {
	rng    *rand.Rand
	cities []City
}

// New creates a generator seeded with seed
func New(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		cities: Cities,
	}
}

// Users returns count random profiles followed by the fixed test users
func (g *Generator) Users(count int) ([]profile.Profile, error) {
	if count < 0 {
		return nil, fmt.Errorf("count must not be negative: %d", count)
	}

	users := make([]profile.Profile, 0, count+len(fixtures))
	for i := 0; i < count; i++ {
		u, err := g.randomUser()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	for _, f := range fixtures {
		u, err := g.fixtureUser(f.username, f.city, f.age)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (g *Generator) randomUser() (profile.Profile, error) {
	id, err := g.newUUID()
	if err != nil {
		return nil, err
	}
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]
	username := fmt.Sprintf("%s.%s%d", strings.ToLower(first), strings.ToLower(last), 1+g.rng.Intn(9999))
	city := g.pickCity()

	p := g.base(id, username, city, 18+g.rng.Intn(48))
	p["display_name"] = first + " " + last
	p["is_verified"] = g.rng.Float64() < 0.25
	p["is_banned"] = g.rng.Float64() < 0.01
	p["credits"] = g.rng.Intn(501)
	p["interests"] = g.interests(city)
	p["language"] = languages[g.rng.Intn(len(languages))]
	return p, nil
}

func (g *Generator) fixtureUser(username, cityName string, age int) (profile.Profile, error) {
	id, err := g.newUUID()
	if err != nil {
		return nil, err
	}
	city := g.cities[0]
	for _, c := range g.cities {
		if c.Name == cityName {
			city = c
			break
		}
	}

	p := g.base(id, username, city, age)
	name := strings.SplitN(username, ".", 2)[0]
	p["display_name"] = strings.ToUpper(name[:1]) + name[1:]
	p["is_verified"] = true
	p["is_banned"] = false
	p["credits"] = 100
	p["interests"] = []string{"hiking", "coffee", "music"}
	p["language"] = "en"
	return p, nil
}

func (g *Generator) base(id, username string, city City, age int) profile.Profile {
	return profile.Profile{
		"uuid":     id,
		"username": username,
		"email":    username + "@example.com",
		"age":      age,
		"city":     city.Name,
		"state":    city.State,
		"region":   city.State,
		"country":  city.Country,
	}
}

// newUUID draws a version 4 UUID from the generator's source so a seed
// always yields the same identifiers
func (g *Generator) newUUID() (string, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return id.String(), nil
}

func (g *Generator) pickCity() City {
	total := 0.0
	for _, c := range g.cities {
		total += c.Weight
	}
	r := g.rng.Float64() * total
	for _, c := range g.cities {
		r -= c.Weight
		if r < 0 {
			return c
		}
	}
	return g.cities[len(g.cities)-1]
}

// interests biases users of the same city towards two shared interests
func (g *Generator) interests(city City) []string {
	want := 4 + g.rng.Intn(7)
	seed := 0
	for _, r := range city.Name {
		seed += int(r)
	}

	set := make(map[string]struct{}, want)
	ordered := make([]string, 0, want)
	add := func(s string) {
		if _, ok := set[s]; ok {
			return
		}
		set[s] = struct{}{}
		ordered = append(ordered, s)
	}

	for _, idx := range g.rng.Perm(len(interestsPool))[:2] {
		add(interestsPool[idx])
	}
	if g.rng.Float64() < 0.7 {
		add(interestsPool[seed%len(interestsPool)])
		add(interestsPool[(seed+3)%len(interestsPool)])
	}
	for len(ordered) < want {
		add(interestsPool[g.rng.Intn(len(interestsPool))])
	}
	return ordered
}
