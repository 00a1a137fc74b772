package assets

import (
	"bufio"
	"io"
	"path"
	"strings"
)

// Library is what the viewer needs to know about a material library before decoding it:
// the material names in file order and the texture files they reference.
type Library struct {
	Names []string
	// Textures are asset names, relative to the asset root.
	Textures []string
	// Diffuse maps a material name to its map_Kd file, relative to the MTL's directory.
	Diffuse map[string]string
}

// textureKeys are the MTL statements whose last argument is a texture file.
var textureKeys = map[string]bool{
	"map_ka": true, "map_kd": true, "map_ks": true, "map_ns": true, "map_d": true,
	"map_bump": true, "bump": true, "disp": true, "decal": true, "refl": true,
	"map_pr": true, "map_pm": true, "map_ke": true, "norm": true,
}

// ScanLibrary reads an MTL stream and lists its materials and textures.
// Texture names are returned relative to dir (the MTL's own directory), deduplicated.
func ScanLibrary(r io.Reader, dir string) (Library, error) {
	lib := Library{Diffuse: make(map[string]string)}
	seen := make(map[string]bool)
	current := ""
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		key := strings.ToLower(fields[0])
		switch {
		case key == "newmtl":
			current = strings.Join(fields[1:], " ")
			lib.Names = append(lib.Names, current)
		case textureKeys[key]:
			// options such as -bm 0.5 precede the file name
			rel := strings.ReplaceAll(fields[len(fields)-1], "\\", "/")
			if key == "map_kd" && current != "" {
				lib.Diffuse[current] = rel
			}
			tex := path.Join(dir, rel)
			if !seen[tex] {
				seen[tex] = true
				lib.Textures = append(lib.Textures, tex)
			}
		}
	}
	return lib, sc.Err()
}
