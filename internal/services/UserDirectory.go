package services

import (
	"fmt"
	"html"
	"math/rand/v2"
	"sort"
	"strings"
	"transcript/internal/models"
	"transcript/internal/providers"
	"transcript/internal/structures"
)

const (
	DefaultColor = "#dddddd"
	UnknownName  = "???"
	BotUserID    = "bot/other"
	BotLabel     = "BOT"

	colorChannelMin = 0xA0
	colorChannelMax = 0xF0
)

// labelEntities are applied to user labels only, after HTML escaping.
var labelEntities = strings.NewReplacer("é", "&eacute;", "í", "&iacute;")

type UserDirectoryInterface interface {
	Lookup(id string) (models.User, bool)
	Resolve(id string) models.User
	AssignColor(id string) string
	Label(id string, profile *models.Profile) string
	Finalize()
}

// UserDirectory maps user ids to names and pinned display colors. The color
// table is read from and written back to the config it was built from.
type UserDirectory struct {
	users  map[string]models.User
	colors map[string]string
	conf   *structures.Config
	cache  providers.CacheProviderInterface
	rnd    *rand.Rand
}

func NewUserDirectory(users []models.User, conf *structures.Config, cache providers.CacheProviderInterface, rnd *rand.Rand) *UserDirectory {
	d := &UserDirectory{
		users:  make(map[string]models.User, len(users)),
		colors: make(map[string]string, len(conf.UserColors)),
		conf:   conf,
		cache:  cache,
		rnd:    rnd,
	}
	if d.rnd == nil {
		d.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	for _, uc := range conf.UserColors {
		d.colors[uc.ID] = uc.Color
	}
	for _, u := range users {
		if u.ID == "" {
			continue
		}
		d.users[u.ID] = u
	}
	return d
}

func (d *UserDirectory) Lookup(id string) (models.User, bool) {
	u, ok := d.users[id]
	if !ok {
		return models.User{}, false
	}
	u.Color = d.colorOrDefault(id)
	return u, true
}

// Resolve never fails: unknown ids resolve to themselves and an empty id to
// the "???" placeholder.
func (d *UserDirectory) Resolve(id string) models.User {
	if u, ok := d.Lookup(id); ok {
		return u
	}
	name := id
	if name == "" {
		name = UnknownName
	}
	return models.User{ID: id, Name: name, Color: d.colorOrDefault(id)}
}

func (d *UserDirectory) colorOrDefault(id string) string {
	if c, ok := d.colors[id]; ok {
		return c
	}
	return DefaultColor
}

func (d *UserDirectory) AssignColor(id string) string {
	if c, ok := d.colors[id]; ok {
		return c
	}
	c := fmt.Sprintf("#%02x%02x%02x", d.channel(), d.channel(), d.channel())
	d.colors[id] = c
	return c
}

func (d *UserDirectory) channel() int {
	return colorChannelMin + d.rnd.IntN(colorChannelMax-colorChannelMin+1)
}

// Label composes the name shown next to a message.
func (d *UserDirectory) Label(id string, profile *models.Profile) string {
	key := "label:" + id
	if profile != nil {
		key += "|" + profile.Name + "|" + profile.RealName
	}
	if cached, ok := d.cache.Get(key); ok {
		return string(cached)
	}

	var label string
	switch {
	case profile != nil:
		label = profile.Name + " (" + profile.RealName + ")"
	case id == "":
		label = BotLabel
	default:
		label = d.Resolve(id).Name
	}
	label = labelEntities.Replace(html.EscapeString(label))

	d.cache.Set(key, []byte(label))
	return label
}

// Finalize copies the color table back into the config, sorted by id.
func (d *UserDirectory) Finalize() {
	ids := make([]string, 0, len(d.colors))
	for id := range d.colors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	colors := make([]structures.UserColor, 0, len(ids))
	for _, id := range ids {
		colors = append(colors, structures.UserColor{ID: id, Color: d.colors[id]})
	}
	d.conf.UserColors = colors
}
