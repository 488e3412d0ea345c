// Package netaddr 提供生成 IOS 配置时常用的 IPv4 地址换算。
package netaddr

import (
	"encoding/binary"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/honeybbq/iosconfig/pkg/nxerrors"
)

// PrefixToMask converts a prefix length (0-32) to dotted notation. With
// wildcard set it returns the inverted mask used by ACLs and OSPF.
func PrefixToMask(prefix int, wildcard bool) (string, error) {
	if prefix < 0 || prefix > 32 {
		return "", nxerrors.New(nxerrors.KindValidation, fmt.Errorf("prefix %d out of range", prefix))
	}
	mask := ^uint32(0) << (32 - prefix)
	if prefix == 0 {
		mask = 0
	}
	if wildcard {
		mask = ^mask
	}
	return fromUint32(mask).String(), nil
}

// MaskToPrefix converts a dotted netmask back to its prefix length.
func MaskToPrefix(mask string) (int, error) {
	addr, err := netip.ParseAddr(mask)
	if err != nil || !addr.Is4() {
		return 0, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("invalid netmask %q", mask))
	}
	bits := toUint32(addr)
	ones := 0
	for bits&(1<<31) != 0 {
		ones++
		bits <<= 1
	}
	if bits != 0 {
		return 0, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("non-contiguous netmask %q", mask))
	}
	return ones, nil
}

// Split separates "192.168.0.1/24" or "192.168.0.1/255.255.255.0" into the
// address and its prefix length.
func Split(addrWithMask string) (netip.Addr, int, error) {
	ipPart, maskPart, ok := strings.Cut(strings.TrimSpace(addrWithMask), "/")
	if !ok {
		return netip.Addr{}, 0, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("missing prefix in %q", addrWithMask))
	}
	addr, err := netip.ParseAddr(ipPart)
	if err != nil {
		return netip.Addr{}, 0, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("invalid address %q: %w", ipPart, err))
	}
	var prefix int
	if strings.Contains(maskPart, ".") {
		prefix, err = MaskToPrefix(maskPart)
		if err != nil {
			return netip.Addr{}, 0, err
		}
	} else {
		prefix, err = strconv.Atoi(maskPart)
		if err != nil || prefix < 0 || prefix > addr.BitLen() {
			return netip.Addr{}, 0, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("invalid prefix %q", maskPart))
		}
	}
	return addr, prefix, nil
}

// NetworkAddress masks ip with the given prefix length.
func NetworkAddress(ip string, prefix int) (string, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "", nxerrors.New(nxerrors.KindValidation, fmt.Errorf("invalid address %q: %w", ip, err))
	}
	network, err := addr.Prefix(prefix)
	if err != nil {
		return "", nxerrors.New(nxerrors.KindValidation, err)
	}
	return network.Addr().String(), nil
}

// NextIP returns the address following ip, wrapping at the end of the space.
func NextIP(ip string) (string, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "", nxerrors.New(nxerrors.KindValidation, fmt.Errorf("invalid address %q: %w", ip, err))
	}
	next := addr.Next()
	if !next.IsValid() {
		if addr.Is4() {
			return netip.IPv4Unspecified().String(), nil
		}
		return netip.IPv6Unspecified().String(), nil
	}
	return next.String(), nil
}

func toUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}

func fromUint32(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}
