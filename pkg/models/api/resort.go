package api

type Resort struct {
	Name string `json:"name"`
}

type Error struct {
	Message string `json:"error"`
}
