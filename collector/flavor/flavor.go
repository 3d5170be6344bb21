// Package flavor detects which Ubuntu desktop flavor meta packages are
// installed by parsing `apt-cache policy` output.
package flavor

import (
	"github.com/samber/lo"

	"github.com/ftahirops/xinfo/model"
)

// Flavors is the table of known flavor packages, in the order they are queried.
var Flavors = []model.Flavor{
	{Name: "Vanilla Server", Icon: "distros/ubuntu.png", URL: "https://ubuntu.org/", Package: "ubuntu-server"},
	{Name: "Ubuntu GNOME", Icon: "distros/ubuntu.png", URL: "https://ubuntu.org/", Package: "ubuntu-desktop"},
	{Name: "Xubuntu", Icon: "distros/xubuntu.png", URL: "https://xubuntu.org/", Package: "xubuntu-desktop"},
	{Name: "Kubuntu", Icon: "distros/kubuntu.png", URL: "https://kubuntu.org/", Package: "kubuntu-desktop"},
	{Name: "Lubuntu", Icon: "distros/lubuntu.png", URL: "https://lubuntu.me/", Package: "lubuntu-desktop"},
	{Name: "Ubuntu MATE", Icon: "distros/ubuntu-mate.png", URL: "https://ubuntu-mate.org/", Package: "ubuntu-mate-desktop"},
	{Name: "Ubuntu Budgie", Icon: "distros/ubuntu-budgie.png", URL: "https://ubuntubudgie.org/", Package: "ubuntu-budgie-desktop"},
	{Name: "UbuntuKylin (做最有中国味的操作系统)", Icon: "distros/ubuntu-kylin.png", URL: "https://www.ubuntukylin.com", Package: "ubuntukylin-desktop"},
	{Name: "UbuntuStudio", Icon: "distros/ubuntu-studio.png", URL: "https://ubuntustudio.org/", Package: "ubuntustudio-desktop"},
}

// Find returns the table entry for a package name.
func Find(pkg string) (model.Flavor, bool) {
	return lo.Find(Flavors, func(f model.Flavor) bool {
		return f.Package == pkg
	})
}

// Packages returns the package names of the flavor table.
func Packages() []string {
	return lo.Map(Flavors, func(f model.Flavor, _ int) string {
		return f.Package
	})
}
