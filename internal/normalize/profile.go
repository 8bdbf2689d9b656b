package normalize

import (
	"encoding/json"

	"github.com/vmihiranga/digizigtool/pkg/types"
)

// Profile dialects are selected by which endpoint answered, not sniffed.
const (
	SourceVreden    = "vreden"
	SourceGokublack = "gokublack"
)

// Profile maps a raw profile payload to the common schema using the
// extractor named by source. A shape mismatch yields the empty record,
// recognizable by its empty Username.
func Profile(body []byte, source string) types.Profile {
	var profile types.Profile
	switch source {
	case SourceVreden:
		profile = vredenProfile(body)
	case SourceGokublack:
		profile = gokublackProfile(body)
	}
	return sealProfile(profile)
}

func sealProfile(p types.Profile) types.Profile {
	if p.Posts == nil {
		p.Posts = []json.RawMessage{}
	}
	return p
}

// vreden: nested result.user object with ~20 named fields.

type vredenUser struct {
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Biography       string `json:"biography"`
	FollowerCount   *int64 `json:"follower_count"`
	FollowingCount  *int64 `json:"following_count"`
	MediaCount      *int64 `json:"media_count"`
	ProfilePicURL   string `json:"profile_pic_url"`
	ProfilePicURLHD string `json:"profile_pic_url_hd"`
	HDProfilePic    *struct {
		URL string `json:"url"`
	} `json:"hd_profile_pic_url_info"`
	IsPrivate         bool   `json:"is_private"`
	IsVerified        bool   `json:"is_verified"`
	Category          string `json:"category"`
	ExternalURL       string `json:"external_url"`
	AccountType       int    `json:"account_type"`
	PublicEmail       string `json:"public_email"`
	BiographyEmail    string `json:"biography_email"`
	PublicPhoneNumber string `json:"public_phone_number"`
	LocationData      *struct {
		CityName string `json:"city_name"`
	} `json:"location_data"`
	LatestReelMedia       int64  `json:"latest_reel_media"`
	IsActiveOnTextPostApp bool   `json:"is_active_on_text_post_app"`
	HasHighlightReels     bool   `json:"has_highlight_reels"`
	FBIDV2                flexID `json:"fbid_v2"`
	IsNewToInstagram      bool   `json:"is_new_to_instagram"`
}

func vredenProfile(body []byte) types.Profile {
	env, ok := parseEnvelope(body)
	if !ok {
		return types.Profile{}
	}
	code, valid := env.statusCode()
	if !valid || code != 200 {
		return types.Profile{}
	}
	var result struct {
		User *vredenUser `json:"user"`
	}
	if !decode(env.Result, &result) || result.User == nil {
		return types.Profile{}
	}
	user := result.User

	profilePicHD := user.ProfilePicURLHD
	if profilePicHD == "" && user.HDProfilePic != nil {
		profilePicHD = user.HDProfilePic.URL
	}

	email := user.PublicEmail
	if email == "" {
		email = user.BiographyEmail
	}
	address := ""
	if user.LocationData != nil {
		address = user.LocationData.CityName
	}

	accountCreated := "Established"
	if user.IsNewToInstagram {
		accountCreated = "Recent"
	}

	return types.Profile{
		Username:         user.Username,
		FullName:         user.FullName,
		Biography:        user.Biography,
		FollowerCount:    user.FollowerCount,
		FollowingCount:   user.FollowingCount,
		MediaCount:       user.MediaCount,
		ProfilePic:       user.ProfilePicURL,
		ProfilePicHD:     profilePicHD,
		IsPrivate:        user.IsPrivate,
		IsVerified:       user.IsVerified,
		Category:         user.Category,
		ExternalURL:      user.ExternalURL,
		BusinessCategory: businessCategory(user.AccountType),
		ContactInfo: types.ContactInfo{
			Email:   email,
			Phone:   user.PublicPhoneNumber,
			Address: address,
		},
		Engagement: types.Engagement{
			HasStories:        user.LatestReelMedia > 0,
			IsActiveOnThreads: user.IsActiveOnTextPostApp,
			HasHighlights:     user.HasHighlightReels,
		},
		Metadata: types.ProfileMetadata{
			FBID:           user.FBIDV2.String(),
			AccountCreated: accountCreated,
			LastActive:     user.LatestReelMedia,
		},
	}
}

// businessCategory maps the provider's account type enumeration.
func businessCategory(accountType int) string {
	switch accountType {
	case 3:
		return "Business"
	case 2:
		return "Creator"
	default:
		return "Personal"
	}
}

// gokublack: flat payload with Spanish field names; booleans arrive as a
// localized yes/no string compared against a fixed literal.

const yesLiteral = "Sí"

type gokublackPayload struct {
	StatusCode           int               `json:"statusCode"`
	Usuario              string            `json:"usuario"`
	NombreCompleto       string            `json:"nombre_completo"`
	Biografia            string            `json:"biografia"`
	Seguidores           *int64            `json:"seguidores"`
	Siguiendo            *int64            `json:"siguiendo"`
	Publicaciones        *int64            `json:"publicaciones"`
	FotoPerfil           string            `json:"foto_perfil"`
	CuentaPrivada        string            `json:"cuenta_privada"`
	CuentaVerificada     string            `json:"cuenta_verificada"`
	EnlaceExterno        string            `json:"enlace_externo"`
	CuentaComercial      string            `json:"cuenta_comercial"`
	PublicacionesDetalle []json.RawMessage `json:"publicaciones_detalle"`
}

func gokublackProfile(body []byte) types.Profile {
	var payload gokublackPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Profile{}
	}
	if payload.StatusCode != 200 {
		return types.Profile{}
	}

	businessCat := "Personal"
	if payload.CuentaComercial == yesLiteral {
		businessCat = "Business"
	}

	return types.Profile{
		Username:         payload.Usuario,
		FullName:         payload.NombreCompleto,
		Biography:        payload.Biografia,
		FollowerCount:    payload.Seguidores,
		FollowingCount:   payload.Siguiendo,
		MediaCount:       payload.Publicaciones,
		ProfilePic:       payload.FotoPerfil,
		ProfilePicHD:     payload.FotoPerfil,
		IsPrivate:        payload.CuentaPrivada == yesLiteral,
		IsVerified:       payload.CuentaVerificada == yesLiteral,
		ExternalURL:      payload.EnlaceExterno,
		BusinessCategory: businessCat,
		Posts:            payload.PublicacionesDetalle,
	}
}
