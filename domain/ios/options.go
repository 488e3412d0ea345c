package ios

import (
	"maps"
	"slices"

	openwrtv1 "github.com/honeybbq/netjson/gen/go/netjson/openwrt/v1"

	helpers "github.com/honeybbq/iosconfig/domain/utils"
	"github.com/honeybbq/iosconfig/pkg/options"
)

// 选项分组，用于展示。
const (
	GroupSystem     = "System"
	GroupServices   = "Services"
	GroupSecurity   = "Security"
	GroupManagement = "Management"
)

type optionDef struct {
	name        string
	value       string
	typ         string
	group       string
	description string
}

var defaultOptions = []optionDef{
	{"hostname", "Router", options.TypeText, GroupSystem, "Device hostname"},
	{"ios-version", "15.2", options.TypeText, GroupSystem, "Version line written to the preamble"},
	{"domain-name", "", options.TypeText, GroupSystem, "Default DNS domain"},
	{"timezone", "UTC", options.TypeText, GroupSystem, "Clock timezone name"},
	{"timezone-offset", "0", options.TypeInt, GroupSystem, "Clock timezone offset in hours"},
	{"timestamps", "true", options.TypeBool, GroupServices, "Timestamp debug and log messages"},
	{"password-encryption", "true", options.TypeBool, GroupServices, "Encrypt passwords stored in the configuration"},
	{"ip-routing", "true", options.TypeBool, GroupServices, "Enable IPv4 routing"},
	{"ipv6-routing", "false", options.TypeBool, GroupServices, "Enable IPv6 unicast routing"},
	{"domain-lookup", "false", options.TypeBool, GroupServices, "Resolve unknown commands through DNS"},
	{"enable-secret", "", options.TypeText, GroupSecurity, "Privileged EXEC secret"},
	{"ssh-version", "2", options.TypeInt, GroupSecurity, "SSH protocol version"},
	{"logging-host", "", options.TypeIP, GroupManagement, "Syslog collector address"},
	{"banner", "", options.TypeText, GroupManagement, "Message of the day"},
	{"vty-lines", "4", options.TypeInt, GroupManagement, "Last VTY line number"},
	{"vty-transport", "ssh", options.TypeText, GroupManagement, "Allowed VTY input transports"},
	{"exec-timeout", "10", options.TypeInt, GroupManagement, "Console and VTY idle timeout in minutes"},
}

// RegisterOptions 注册 IOS 生成器识别的全部选项及其默认值。
func RegisterOptions(reg *options.Registry) error {
	for _, def := range defaultOptions {
		_, err := reg.Add(def.name, def.value,
			options.WithType(def.typ),
			options.WithGroup(def.group),
			options.WithDescription(def.description),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ApplyOverrides sets option values in name order. An unknown name aborts
// with a lookup error.
func ApplyOverrides(reg *options.Registry, overrides map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		if err := reg.SetValue(name, overrides[name]); err != nil {
			return err
		}
	}
	return nil
}

// applyModel 将 NetJSON 中的值作为选项默认值。
func applyModel(reg *options.Registry, msg *openwrtv1.OpenWrtConfig) error {
	general := helpers.ProtoMessageToMap(msg.GetGeneral())
	if err := helpers.ApplyModelDefault(reg, "hostname", helpers.StringField(general, "hostname")); err != nil {
		return err
	}
	if err := helpers.ApplyModelDefault(reg, "timezone", helpers.StringField(general, "timezone")); err != nil {
		return err
	}
	if search := msg.GetDnsSearch(); len(search) > 0 {
		if err := helpers.ApplyModelDefault(reg, "domain-name", search[0]); err != nil {
			return err
		}
	}
	return nil
}
